package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	Hero        string    `json:"hero"`
	ReleaseYear int       `json:"release_year"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListMoviesRequest struct{}

type ListMoviesResponse struct {
	Movies []Movie `json:"movies"`
}

type CreateMovieRequest struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	Hero        string `json:"hero"`
	ReleaseYear int    `json:"release_year"`
}

type CreateMovieResponse struct {
	Movie Movie `json:"movie"`
}

type Review struct {
	ID           string    `json:"id"`
	MovieID      string    `json:"movie_id"`
	Reviewer     string    `json:"reviewer"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListReviewsRequest struct {
	MovieID string `json:"movie_id"`
}

type ListReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}

// SubmitReviewRequest is sent by the reviewer; the reviewer identity comes
// from the access token.
type SubmitReviewRequest struct {
	MovieID      string `json:"movie_id"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

type SubmitReviewResponse struct {
	Review Review `json:"review"`
	Vault  Vault  `json:"vault"`
}

type UpdateReviewRequest struct {
	ReviewID     string `json:"review_id"`
	MovieID      string `json:"movie_id"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

type UpdateReviewResponse struct {
	Review Review `json:"review"`
}

type DeleteReviewRequest struct {
	ReviewID string `json:"review_id"`
}

type DeleteReviewResponse struct{}

// Vault amounts are in base units (6 decimals).
type Vault struct {
	Owner               string `json:"owner"`
	PendingBalance      uint64 `json:"pending_balance"`
	WithdrawableBalance uint64 `json:"withdrawable_balance"`
	LastPromotionTime   int64  `json:"last_promotion_time"`
	TotalWithdrawn      uint64 `json:"total_withdrawn"`
}

type GetVaultRequest struct{}

type GetVaultResponse struct {
	Vault             Vault  `json:"vault"`
	WithdrawableNow   uint64 `json:"withdrawable_now"`
	CooldownRemaining int64  `json:"cooldown_remaining"`
	PoolAddress       string `json:"pool_address"`
	PoolBalance       uint64 `json:"pool_balance"`
	WalletBalance     uint64 `json:"wallet_balance"`
}

type WithdrawRequest struct{}

type WithdrawResponse struct {
	Amount uint64 `json:"amount"`
}
