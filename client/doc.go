// Package client provides a generic pipeline for calling JSON APIs
// relative to a base URL, decoding responses into caller-defined models.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build("https://api.github.com",
//		client.WithTimeout(10*time.Second),
//		client.WithUserAgent("myapp/1.0"),
//		client.WithRequestID(),
//	)
//
// # Models
//
// A model is any type whose pointer implements [DataModel]. Types built
// from parsed JSON implement [JSONModel] and delegate to [DecodeJSON];
// plain structs can delegate to [DecodeStruct]:
//
//	type Repo struct {
//		Name  string `json:"name" validate:"required"`
//		Stars int    `json:"stargazers_count"`
//	}
//
//	func (r *Repo) FromBytes(b []byte) bool { return client.DecodeStruct(r, b) }
//
// # Making Requests
//
// Methods cannot carry type parameters, so the operations are package
// functions taking the client:
//
//	repo, err := client.Respond[Repo](ctx, c, client.MethodGet, "/repos/golang/go")
//	repos, err := client.RespondWithArray[Repo](ctx, c, client.MethodGet,
//		c.BuildPath("/orgs/golang/repos", map[string]string{"per_page": "10"}))
//	err = client.RespondVoid(ctx, c, client.MethodDelete, "/v1/kv/x",
//		client.WithStatusRange(200, 205))
//
// Per-call behavior is set with [CallOption] values such as [WithBody],
// [WithHeaders], [WithEncoding], [WithRequestModification],
// [WithModelParser] and [WithArrayParser].
//
// # Errors
//
// Every failure is classified by [KindOf]. Status codes outside the
// call's range yield a [*StatusCodeError] carrying the full [Response]:
//
//	var sce *client.StatusCodeError
//	if errors.As(err, &sce) && sce.StatusCode == http.StatusNotFound { ... }
//
// # Async Calls
//
// Each operation has an Async form that runs on a background goroutine
// and invokes a completion callback exactly once:
//
//	r := client.RespondAsync[Repo](ctx, c, client.MethodGet, "/repos/golang/go",
//		func(repo Repo, err error) { ... })
//	// ... do other work ...
//	<-r.Done()
//
// Use [WithMaxConcurrent] to bound in-flight async calls and
// [Client.Wait] to block until all of them have finished.
package client
