package api

import (
	"context"
	"errors"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the authenticated admin's ID to the context
func ctxWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the authenticated admin's ID from the context
func ctxGetUserID(ctx context.Context) (string, error) {
	ctxValue := ctx.Value(userIDKey)
	if ctxValue == nil {
		return "", errors.New("key not found in context")
	}
	valueAsString, ok := ctxValue.(string)
	if !ok {
		return "", errors.New("value is not of type `string`")
	}
	return valueAsString, nil
}
