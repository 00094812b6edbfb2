package response

type RegisterResponse struct {
	ID int64 `json:"id"`
}

type LoginResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}
