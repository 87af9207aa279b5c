package dto

type UserCreateRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
}
