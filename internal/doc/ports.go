package doc

import "context"

type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}
