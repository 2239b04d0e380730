package handler

type BriefingResponse struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	ImagePath string `json:"image_path"`
	AudioPath string `json:"audio_path,omitempty"`
}
