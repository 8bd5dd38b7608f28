// Package models contains data types and constants for the résumé assistant backend.
package models

import "time"

// DefaultBackendURL is where the assistant backend listens unless configured otherwise.
const DefaultBackendURL = "http://localhost:8000"

// Backend endpoint paths, relative to the backend URL
const (
	EndpointUpload = "/upload"
	EndpointChat   = "/chat"
	EndpointScore  = "/score"
)

// Request and response field names used by the backend
const (
	FormFieldFile           = "file"
	FieldMessage            = "message"
	FieldJobDescription     = "job_description"
	FieldScore              = "score"
	StreamRecordPrefix      = "data: "
	PDFMIMEType             = "application/pdf"
	PDFExtension            = ".pdf"
	MaxResumeSize           = 20 * 1024 * 1024 // 20MB
	DefaultRevealInterval   = 8 * time.Millisecond
	DefaultTimeoutSeconds   = 0 // 0 means no request timeout
	TranscriptFileName      = "resume-chat-history.txt"
	ThemePreferenceKey      = "theme"
	NotificationTTL         = 3 * time.Second
	NotificationCleanupTick = 30 * time.Second
)

// User-facing texts shown in the transcript and notifications
const (
	DefaultGreeting        = "✅ Resume uploaded! Ask me anything about it."
	UploadFailedText       = "❌ Upload failed. Please try again."
	StreamFailedText       = "⚠️ Failed to fetch response."
	NotPDFText             = "❌ Please upload a PDF file."
	EmptyJobDescText       = "📝 Please enter a job description first."
	ScoreFailedText        = "⚠️ Failed to calculate role-fit score."
	TranscriptSavedText    = "✅ Chat downloaded successfully!"
	TranscriptCopiedText   = "✅ Chat copied to clipboard!"
	ScoreSuccessTextFormat = "🎯 Role-fit Score: %s%%"
	FileTooLargeText       = "❌ File is larger than 20MB."
	UploadBusyText         = "⏳ An upload is already in progress."
	StreamBusyText         = "⏳ Wait for the current answer to finish."
	UploadFirstText        = "📄 Upload a PDF résumé first (ctrl+u)."
	NoFileSelectedText     = "📄 Choose a PDF résumé first (ctrl+o)."
	FileSelectedTextFormat = "📄 %s selected. Press ctrl+u to upload."
	ExportFailedTextFormat = "⚠️ Failed to save chat: %v"
	ClipboardFailedText    = "⚠️ Could not copy the chat to the clipboard."
	ThemeSaveFailedText    = "⚠️ Could not save the theme preference."
)

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme converts a stored preference value to a Theme.
// Anything other than "dark" falls back to light.
func ParseTheme(value string) Theme {
	if Theme(value) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether the theme is dark.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// DefaultHeaders returns the headers sent with every backend request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":          "application/json, text/event-stream, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "resumechat/" + ClientVersion,
	}
}

// ClientVersion is reported in the User-Agent header.
var ClientVersion = "0.1.0"
