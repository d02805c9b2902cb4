// Package security holds TLS settings for the HTTP server.
//
//	cfg := security.TLSConfig{
//	    CertFile: "/etc/arraygate/tls.crt",
//	    KeyFile:  "/etc/arraygate/tls.key",
//	}
//	tlsConfig, err := cfg.Build() // nil when CertFile is empty
//
// Without TLS the server speaks HTTP/1.1 and cleartext HTTP/2 (h2c).
package security
