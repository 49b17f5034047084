package core

import (
	"fmt"
	"time"
)

type ResponseKind string

const (
	KindWelcome      ResponseKind = "welcome"
	KindButtons      ResponseKind = "buttons"
	KindTextInput    ResponseKind = "text_input"
	KindText         ResponseKind = "text"
	KindContentCards ResponseKind = "content_cards"
)

// Response is the single outcome of a turn. Data holds one of the *Data
// payload types matching Kind.
type Response struct {
	ConversationID  string       `json:"conversation_id"`
	Kind            ResponseKind `json:"response_type"`
	Data            any          `json:"data"`
	NewConversation bool         `json:"new_conversation"`
	Timestamp       time.Time    `json:"timestamp"`
}

// Summary renders the response as one readable line for logs and history.
func (r Response) Summary() string {
	switch d := r.Data.(type) {
	case WelcomeData:
		return "🤖 " + d.Message
	case ButtonsData:
		return "📋 " + d.Message
	case TextInputData:
		return "✍️ " + d.Message
	case TextData:
		return d.Text
	case CardsData:
		return "📚 " + d.IntroText
	}
	return fmt.Sprintf("RESPONSE_TYPE: %s | DATA: %v", r.Kind, r.Data)
}

type TextData struct {
	Text string `json:"text"`
}

type MenuOption struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type WelcomeData struct {
	Message     string       `json:"message"`
	Options     []MenuOption `json:"options"`
	Personality string       `json:"personality,omitempty"`
	ShowTyping  bool         `json:"show_typing"`
}

type ButtonsData struct {
	Message     string     `json:"message"`
	Questions   []Question `json:"questions"`
	Personality string     `json:"personality,omitempty"`
}

type TextInputData struct {
	Message         string `json:"message"`
	Placeholder     string `json:"placeholder"`
	Personality     string `json:"personality,omitempty"`
	WaitingForInput bool   `json:"waiting_for_input"`
}

type ContentCard struct {
	ID          string   `json:"id"`
	ContentType string   `json:"content_type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type CardsData struct {
	IntroText    string        `json:"intro_text"`
	ContentCards []ContentCard `json:"content_cards"`
	TotalResults int           `json:"total_results"`
}
