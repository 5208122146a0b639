// Package tracing wires OpenTelemetry into the API.
//
// InitTracer installs a global TracerProvider; Middleware opens one server span
// per request and StartSpan opens child spans for repository calls.
//
//	shutdown, err := tracing.InitTracer("simple-cms")
//	if err != nil { ... }
//	defer func() { _ = shutdown(context.Background()) }()
//
//	func (r *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
//	    ctx, span := tracing.StartSpan(ctx, "ArticleRepo.Get")
//	    defer span.End()
//	    ...
//	}
package tracing
