// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"pressmart/internal/domain/entity"
	"pressmart/internal/usecase"
)

// UserResponse is the client-facing shape of an account. The password hash
// never leaves the server; IsSeller is derived from role and verification
// state at serialization time.
type UserResponse struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	IsSeller           bool       `json:"isSeller"`
	VerificationStatus string     `json:"verificationStatus"`
	CompanyName        string     `json:"companyName,omitempty"`
	CompanyDescription string     `json:"companyDescription,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	Address            string     `json:"address,omitempty"`
	AvatarURL          string     `json:"avatarUrl,omitempty"`
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty"`
	LoginCount         int        `json:"loginCount"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ReviewResponse is the client-facing shape of a product review.
type ReviewResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductResponse is the client-facing shape of a catalog listing.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Price       float64          `json:"price"`
	SalePrice   *float64         `json:"salePrice,omitempty"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image"`
	Category    string           `json:"category"`
	Brand       string           `json:"brand"`
	SellerID    string           `json:"sellerId"`
	SellerName  string           `json:"sellerName"`
	Status      string           `json:"status"`
	Reviews     []ReviewResponse `json:"reviews"`
	Rating      float64          `json:"rating"`
	NumReviews  int              `json:"numReviews"`
	Stock       int              `json:"stock"`
	SKU         string           `json:"sku,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	ViewCount   int              `json:"viewCount"`
	SalesCount  int              `json:"salesCount"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// AuthResponse bundles the issued tokens with the authenticated account.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

func toUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		Role:               user.Role.String(),
		IsSeller:           user.IsSeller(),
		VerificationStatus: user.VerificationStatus.String(),
		CompanyName:        user.CompanyName,
		CompanyDescription: user.CompanyDescription,
		Phone:              user.Phone,
		Address:            user.Address,
		AvatarURL:          user.AvatarURL,
		LastLoginAt:        user.LastLoginAt,
		LoginCount:         user.LoginCount,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}

func toUserResponseList(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	return out
}

func toProductResponse(product *entity.Product) ProductResponse {
	reviews := make([]ReviewResponse, 0, len(product.Reviews))
	for _, review := range product.Reviews {
		reviews = append(reviews, ReviewResponse{
			ID:           review.ID.String(),
			UserID:       review.UserID.String(),
			ReviewerName: review.ReviewerName,
			Rating:       review.Rating,
			Comment:      review.Comment,
			CreatedAt:    review.CreatedAt,
		})
	}

	return ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Price:       product.Price,
		SalePrice:   product.SalePrice,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
		Brand:       product.Brand,
		SellerID:    product.SellerID.String(),
		SellerName:  product.SellerName,
		Status:      product.Status.String(),
		Reviews:     reviews,
		Rating:      product.Rating,
		NumReviews:  product.NumReviews,
		Stock:       product.Stock,
		SKU:         product.SKU,
		Tags:        product.Tags,
		ViewCount:   product.ViewCount,
		SalesCount:  product.SalesCount,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductResponseList(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}

	return out
}

func toAuthResponse(output *usecase.AuthOutput) AuthResponse {
	return AuthResponse{
		AccessToken:  output.Tokens.AccessToken,
		RefreshToken: output.Tokens.RefreshToken,
		User:         toUserResponse(output.User),
	}
}
