package memory

import "github.com/Gunvolt24/order_queue/pkg/metrics"

// isEmptyLocked - вызывается только под s.mu.
func (s *OrderStack) isEmptyLocked() bool {
	return s.top == emptyTop
}

// isFullLocked - вызывается только под s.mu.
func (s *OrderStack) isFullLocked() bool {
	return s.top == s.capacity-1
}

// observeSizeLocked - публикует текущий размер в gauge.
func (s *OrderStack) observeSizeLocked() {
	metrics.QueueSize.Set(float64(s.top + 1))
}
