package logging

import "context"

type ctxKeyDetails struct{}

type ctxValue struct {
	Super   *ctxValue
	Details []Detail
}

// ContextWith attaches details to ctx.
// Every log call made with the returned context, or one derived from it, includes them.
func ContextWith(ctx context.Context, ds ...Detail) context.Context {
	if len(ds) == 0 {
		return ctx
	}
	if ctx == nil {
		ctx = context.Background()
	}
	v := &ctxValue{Details: ds}
	if prev, ok := ctx.Value(ctxKeyDetails{}).(*ctxValue); ok {
		v.Super = prev
	}
	return context.WithValue(ctx, ctxKeyDetails{}, v)
}

// detailsFromContext returns the details from the outermost to the innermost ContextWith call.
func detailsFromContext(ctx context.Context) []Detail {
	if ctx == nil {
		return nil
	}
	v, ok := ctx.Value(ctxKeyDetails{}).(*ctxValue)
	if !ok {
		return nil
	}
	var details []Detail
	for ; v != nil; v = v.Super {
		details = append(append([]Detail{}, v.Details...), details...)
	}
	return details
}
