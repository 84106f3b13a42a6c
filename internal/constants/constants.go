package constants

// Sort keys accepted by the catalog filter endpoint.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
	SortName      = "name"
)

// Virtual category values with special filter handling.
const (
	CategoryAll         = "all"
	CategoryBestsellers = "bestsellers"
	CategoryNewIn       = "new-in"
)

// Token purposes. A token minted for one purpose is rejected for another.
const (
	TokenPurposeSession       = "session"
	TokenPurposePasswordReset = "password_reset"
	TokenPurposeEmailConfirm  = "email_confirm"
)

// Queue and task names for out-of-band email dispatch.
const (
	QueueDefault = "default"

	TaskContactNotice     = "email:contact_notice"
	TaskNewsletterWelcome = "email:newsletter_welcome"
	TaskAccountConfirm    = "email:account_confirm"
	TaskPasswordReset     = "email:password_reset"
)

// SearchResultLimit caps /api/products/search responses.
const SearchResultLimit = 20
