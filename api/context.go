package api

import (
	"context"
	"errors"

	"github.com/rpupo63/project-aoi-backend/database"
)

type keyType string

const sessionKey keyType = "session"

// ctxWithSession adds the request's store session to the context
func ctxWithSession(ctx context.Context, session *database.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// ctxGetSession retrieves the store session from the context
func ctxGetSession(ctx context.Context) (*database.Session, error) {
	if ctxValue := ctx.Value(sessionKey); ctxValue == nil {
		return nil, errors.New("session not found in context")
	} else if session, ok := ctxValue.(*database.Session); !ok {
		return nil, errors.New("value is not of type `*database.Session`")
	} else {
		return session, nil
	}
}
