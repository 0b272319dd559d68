package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StayCompleter định nghĩa interface cho việc chốt các đơn đã trả phòng
type StayCompleter interface {
	CompletePastStays() (int64, error)
}

var stayCompleter StayCompleter

// SetStayCompleter thiết lập implementation cho StayCompleter
func SetStayCompleter(completer StayCompleter) {
	stayCompleter = completer
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Cron job chạy lúc 0h mỗi ngày
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Đang chốt các đơn đã trả phòng lúc: %v", now)
		if stayCompleter == nil {
			log.Printf("Lỗi: StayCompleter chưa được thiết lập")
			return
		}
		updated, err := stayCompleter.CompletePastStays()
		if err != nil {
			log.Printf("Lỗi khi chốt các đơn đã trả phòng: %v", err)
			return
		}
		log.Printf("Đã chốt %d đơn sang completed", updated)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
