package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

type BookingMessageBuilder struct {
	reference  string
	roomType   string
	totalPrice float64
}

func NewBookingMessageBuilder(reference, roomType string, totalPrice float64) *BookingMessageBuilder {
	return &BookingMessageBuilder{
		reference:  reference,
		roomType:   roomType,
		totalPrice: totalPrice,
	}
}

func (b *BookingMessageBuilder) Build() string {
	return fmt.Sprintf("🔔 Đơn %s: %s, tổng tiền %.0f.", b.reference, b.roomType, b.totalPrice)
}
