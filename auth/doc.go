// Package auth provides authentication building blocks.
//
// Subpackages:
//
//   - auth/jwt: HMAC-signed subject tokens
//   - auth/password: password hashing (bcrypt, argon2id)
//   - auth/authctx: request context propagation for the authenticated principal
//
// The top-level package provides the shared TokenValidator contract and a
// Config that composes the subpackage configs:
//
//	auth:
//	  jwt:
//	    method: "HS256"        # secret comes from AUTH_JWT_SECRET
//	  password:
//	    algorithm: "bcrypt"
//	    bcrypt_cost: 12
//	  accept_bearer_header: true
//
// All packages follow the same conventions: Config structs with
// ApplyDefaults()/Validate(), constructor functions, and mapstructure tags
// for config file loading.
package auth
