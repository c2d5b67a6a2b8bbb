package tracking

import "github.com/BearBump/DVCPortal/internal/models"

// seedRecords are the demo applications every visitor can look up.
func seedRecords() []models.TrackingRecord {
	return []models.TrackingRecord{
		{
			Code:                "HS2026001234",
			ServiceName:         "Cấp Căn cước công dân gắn chip lần đầu",
			Applicant:           models.Applicant{FullName: "Nguyễn Văn An", Phone: "0901234567"},
			SubmitDate:          "2026-01-15",
			EstimatedCompletion: "2026-01-22",
			Status:              models.TrackingStatusProcessing,
			Fee:                 "25,000 VNĐ",
			Agency:              "Công an Quận Ba Đình, TP. Hà Nội",
			StatusHistory: []models.StatusEntry{
				{Status: models.TrackingStatusReceived, Date: "2026-01-15T08:30:00", Note: "Hồ sơ đã được tiếp nhận"},
				{Status: models.TrackingStatusVerifying, Date: "2026-01-15T14:00:00", Note: "Đang xác minh thông tin"},
				{Status: models.TrackingStatusProcessing, Date: "2026-01-17T09:00:00", Note: "Đang xử lý tại phòng QLHC"},
			},
		},
		{
			Code:                "HS2026005678",
			ServiceName:         "Đăng ký kết hôn",
			Applicant:           models.Applicant{FullName: "Trần Minh Tuấn", Phone: "0912345678"},
			SubmitDate:          "2026-01-10",
			EstimatedCompletion: "2026-01-17",
			Status:              models.TrackingStatusCompleted,
			Fee:                 "Miễn phí",
			Agency:              "UBND Phường Láng Hạ, Quận Đống Đa, TP. Hà Nội",
			StatusHistory: []models.StatusEntry{
				{Status: models.TrackingStatusReceived, Date: "2026-01-10T09:00:00", Note: "Hồ sơ đã được tiếp nhận"},
				{Status: models.TrackingStatusVerifying, Date: "2026-01-10T14:30:00", Note: "Đang xác minh thông tin"},
				{Status: models.TrackingStatusProcessing, Date: "2026-01-12T10:00:00", Note: "Đang xử lý"},
				{Status: models.TrackingStatusApproval, Date: "2026-01-15T11:00:00", Note: "Đã phê duyệt"},
				{Status: models.TrackingStatusCompleted, Date: "2026-01-16T08:00:00", Note: "Hoàn thành - Đã trả kết quả"},
			},
		},
		{
			Code:                "HS2026009012",
			ServiceName:         "Cấp Giấy phép lái xe hạng B1",
			Applicant:           models.Applicant{FullName: "Lê Thị Hương", Phone: "0987654321"},
			SubmitDate:          "2026-01-18",
			EstimatedCompletion: "2026-02-01",
			Status:              models.TrackingStatusPending,
			Fee:                 "135,000 VNĐ",
			Agency:              "Sở Giao thông Vận tải TP. Hồ Chí Minh",
			StatusHistory: []models.StatusEntry{
				{Status: models.TrackingStatusReceived, Date: "2026-01-18T10:00:00", Note: "Hồ sơ đã được tiếp nhận"},
			},
		},
	}
}
