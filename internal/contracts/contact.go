package contracts

// ContactRequest is the body of both create and full replace. An omitted
// favorite means false.
type ContactRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Favorite *bool  `json:"favorite" binding:"omitempty"`
}

type FavoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}
