package model

// Response is one turn's reply, delivered by the external messaging
// transport. Options render as quick-reply choices; Messages carry
// structured per-item payloads (car cards and their selection buttons).
type Response struct {
	Message  string              `json:"message"`
	Options  []string            `json:"options,omitempty"`
	Messages []StructuredMessage `json:"messages,omitempty"`
}

// Message type discriminators.
const (
	MessageTypeText        = "text"
	MessageTypeImage       = "image"
	MessageTypeInteractive = "interactive"
)

// StructuredMessage is a tagged union over the supported payload variants.
type StructuredMessage struct {
	Type        string         `json:"type"`
	Text        *TextPayload   `json:"text,omitempty"`
	Image       *ImagePayload  `json:"image,omitempty"`
	Interactive *ButtonPayload `json:"interactive,omitempty"`
}

type TextPayload struct {
	Body string `json:"body"`
}

type ImagePayload struct {
	Link    string `json:"link"`
	Caption string `json:"caption"`
}

type ButtonPayload struct {
	BodyText    string `json:"body_text"`
	ButtonID    string `json:"button_id"`
	ButtonTitle string `json:"button_title"`
}

func TextMessage(body string) StructuredMessage {
	return StructuredMessage{Type: MessageTypeText, Text: &TextPayload{Body: body}}
}

func ImageMessage(link, caption string) StructuredMessage {
	return StructuredMessage{Type: MessageTypeImage, Image: &ImagePayload{Link: link, Caption: caption}}
}

func ButtonMessage(bodyText, buttonID, buttonTitle string) StructuredMessage {
	return StructuredMessage{Type: MessageTypeInteractive, Interactive: &ButtonPayload{
		BodyText:    bodyText,
		ButtonID:    buttonID,
		ButtonTitle: buttonTitle,
	}}
}
