// Package server provides the HTTP server: gin for routing and binding,
// served over HTTP/1.1 and h2c, or over TLS when server.tls is configured,
// with component lifecycle, operational endpoints and a shared error
// responder.
//
//	srv := server.New(cfg, log)
//	srv.ApplyMiddleware()
//	srv.RegisterDefaultEndpoints("arraygate", env, checker)
//	api.Register(srv.GinEngine(), handler)
//	registry.Register(server.NewComponent(srv))
//
// Middleware lives in server/middleware and the operational handlers in
// server/endpoint.
package server
