package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type RoomType struct {
	ID              uint            `json:"id" gorm:"primaryKey"` // ID cho loại phòng
	Name            string          `json:"name"`                 // Tên hiển thị, chỉ dùng để hiển thị
	Description     string          `json:"description"`          // Mô tả chi tiết
	NightlyRate     int             `json:"nightlyRate"`          // Giá mỗi đêm
	CapacityPerUnit int             `json:"capacityPerUnit"`      // Số khách tối đa mỗi phòng
	TotalUnits      int             `json:"totalUnits"`           // Số phòng vật lý thuộc loại này
	IsBookable      bool            `json:"isBookable" gorm:"default:true"`
	Avatar          string          `json:"avatar"`
	Img             json.RawMessage `json:"img" gorm:"type:json"` // Hình ảnh loại phòng
	NumBed          int             `json:"numBed"`
	NumTolet        int             `json:"numTolet"`
	Acreage         int             `json:"acreage"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Reservations    []Reservation   `json:"-" gorm:"foreignKey:RoomTypeID"`
}

func (r *RoomType) ValidateInventory() error {
	if r.TotalUnits < 1 {
		return fmt.Errorf("invalid totalUnits: %d, must be >= 1", r.TotalUnits)
	}
	if r.NightlyRate < 0 {
		return fmt.Errorf("invalid nightlyRate: %d, must be >= 0", r.NightlyRate)
	}
	return nil
}
