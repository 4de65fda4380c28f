package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/internal/ports"
)

const (
	lineBufInitial = 64 << 10
	lineBufMax     = 10 << 20
)

// ValidateJSONLStream - построчная проверка JSONL: пустые строки пропускаются,
// невалидные считаются, валидные пишутся в out компактным JSON.
func ValidateJSONLStream(ctx context.Context, validator ports.OrderValidator, in io.Reader, out io.Writer) (Summary, error) {
	var sum Summary

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, lineBufInitial), lineBufMax)

	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		draft, err := ValidateDraftFromJSON(ctx, validator, line)
		if err != nil {
			sum.Invalid++
			continue
		}
		if err := writeDraftLine(out, draft); err != nil {
			return sum, err
		}
		sum.Valid++
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("scan: %w", err)
	}
	return sum, nil
}

func writeDraftLine(out io.Writer, draft *domain.OrderDraft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if _, err := out.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}
