package services

import (
	"fmt"
	"math/rand"
	"time"

	"roomstay/constants"
)

const referenceCharset = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateReference sinh mã đặt phòng cho khách: tiền tố + Unix time + hậu tố ngẫu nhiên.
// Tính duy nhất cuối cùng do unique index ở DB đảm bảo.
func GenerateReference() string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = referenceCharset[rand.Intn(len(referenceCharset))]
	}
	return fmt.Sprintf("%s%d%s", constants.ReferencePrefix, time.Now().Unix(), suffix)
}
