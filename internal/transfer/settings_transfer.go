package transfer

type ContentSettingRequest struct {
	Topic           string `json:"topic" validate:"required,max=500"`
	ContentStyle    string `json:"content_style" validate:"required,max=100"`
	Tone            string `json:"tone" validate:"required,max=100"`
	Language        string `json:"language" validate:"omitempty,max=10"`
	IncludeHashtags *bool  `json:"include_hashtags"`
	IncludeEmojis   *bool  `json:"include_emojis"`
	MaxPostLength   int    `json:"max_post_length" validate:"omitempty,min=1,max=10000"`
}

type PreviewResponse struct {
	Preview string `json:"preview"`
}
