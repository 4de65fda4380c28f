package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/order_queue/internal/ports"
)

// InputFormat - формат входного файла черновиков.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// Summary - итог проверки файла.
type Summary struct {
	Valid   int
	Invalid int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
}

// resolveFormat - для auto формат определяется по расширению, всё кроме .jsonl считается JSON.
func resolveFormat(format InputFormat, path string) InputFormat {
	if format != FormatAuto {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile - проверяет файл черновиков и пишет нормализованные валидные записи в out.
// Для JSON ошибка валидации единственного объекта возвращается как ошибка.
func ValidateFile(ctx context.Context, validator ports.OrderValidator, path string, format InputFormat, out io.Writer) (Summary, error) {
	format = resolveFormat(format, path)
	if format != FormatJSON && format != FormatJSONL {
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if format == FormatJSONL {
		return ValidateJSONLStream(ctx, validator, f, out)
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return Summary{}, fmt.Errorf("read file: %w", err)
	}
	draft, err := ValidateDraftFromJSON(ctx, validator, raw)
	if err != nil {
		return Summary{Invalid: 1}, err
	}
	if err := writeDraftLine(out, draft); err != nil {
		return Summary{}, err
	}
	return Summary{Valid: 1}, nil
}
