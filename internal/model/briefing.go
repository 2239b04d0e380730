package model

type BriefingItem struct {
	Title     string
	Summary   string
	ImagePath string
	AudioPath string
}
