package api

// CredentialsRequest is the body of /register and /login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=72"`
}

// NumbersRequest is the body of the array routes except /binary-search.
// An empty list is valid input; a missing one is not.
type NumbersRequest struct {
	Numbers []int `json:"numbers" validate:"required"`
}

// SearchRequest is the body of /binary-search.
type SearchRequest struct {
	Numbers []int `json:"numbers" validate:"required"`
	Target  *int  `json:"target" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type SortResponse struct {
	Numbers []int `json:"numbers"`
}

type FilterResponse struct {
	EvenNumbers []int `json:"even_numbers"`
}

type SumResponse struct {
	Sum int `json:"sum"`
}

type MaxResponse struct {
	Max int `json:"max"`
}

type SearchResponse struct {
	Found bool `json:"found"`
	Index int  `json:"index"`
}
