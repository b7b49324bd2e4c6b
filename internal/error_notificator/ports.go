package error_notificator

import "context"

type Notificator interface {
	// Notify sends an error report to the admin chat
	Notify(ctx context.Context, err error, details string) error
}
