package requests

// ReportCreateRequest is the payload for filing an abuse report.
type ReportCreateRequest struct {
	Slug         string `json:"slug" binding:"required,min=1,max=255"`
	Reason       string `json:"reason" binding:"required,min=3,max=2000"`
	Email        string `json:"email" binding:"omitempty,max=320"`
	CaptchaToken string `json:"captcha_token"`
}
