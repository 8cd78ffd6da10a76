package controllers

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/hrms-lite/modules/hrm/locales"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/viewmodels"
	"github.com/iota-uz/hrms-lite/pkg/application"
	"github.com/iota-uz/hrms-lite/pkg/httpapi"
	"github.com/iota-uz/hrms-lite/pkg/listing"
)

// failureMessage is the API message of err, or the localized fallback.
func failureMessage(ctx context.Context, err error, fallbackKey string) string {
	var f *httpapi.Failure
	if errors.As(err, &f) && f.Msg != "" {
		return f.Msg
	}
	return locales.T(ctx, fallbackKey, nil)
}

// reportFailure logs err and publishes it as an error notification.
func reportFailure(ctx context.Context, app application.Application, op string, err error, fallbackKey string) {
	msg := failureMessage(ctx, err, fallbackKey)
	fields := logrus.Fields{"op": op}
	var f *httpapi.Failure
	if errors.As(err, &f) {
		fields["result"] = f.Result
	}
	app.Logger().WithFields(fields).WithError(err).Warn(msg)
	app.Notifier().Error(msg)
}

func listState[T any](ctx context.Context, s listing.State[T], visible int, emptyKey, errKey string) viewmodels.ListState {
	state := viewmodels.ListState{
		Total:       s.Cursor.Total,
		Loaded:      len(s.Items),
		Remaining:   max(s.Cursor.Total-len(s.Items), 0),
		HasMore:     s.Cursor.HasMore,
		Loading:     s.InitialLoading,
		LoadingMore: s.LoadingMore,
	}
	if s.Err != nil {
		state.Error = failureMessage(ctx, s.Err, errKey)
	}
	if visible == 0 {
		state.Empty = locales.T(ctx, emptyKey, nil)
	}
	return state
}
