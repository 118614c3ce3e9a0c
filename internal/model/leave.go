package model

import "gorm.io/gorm"

const (
	LeaveTypeSakit = "sakit"
	LeaveTypeIzin  = "izin"
)

const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// Leave adalah pengajuan sakit/izin untuk satu rentang tanggal inklusif.
//
// UserName/Division snapshot saat pengajuan. StartDate <= EndDate diasumsikan
// dari client dan tidak divalidasi. Status hanya bergerak pending -> approved
// atau pending -> rejected lewat aksi admin; status akhir tidak bisa diubah.
type Leave struct {
	gorm.Model
	UserID          uint   `json:"userId" gorm:"index"`
	UserName        string `json:"userName"`
	Division        string `json:"division"`
	Tipe            string `json:"type" gorm:"column:tipe"` // sakit | izin
	StartDate       string `json:"startDate"`               // YYYY-MM-DD
	EndDate         string `json:"endDate"`                 // YYYY-MM-DD
	Reason          string `json:"reason"`
	Attachment      string `json:"attachment"`
	Status          string `json:"status" gorm:"default:pending"`
	RequestDate     string `json:"requestDate"` // YYYY-MM-DD
	RejectionReason string `json:"rejectionReason"`
}

// Editable true selama pengajuan masih pending; hanya saat itu pemilik boleh
// mengubah atau menghapusnya.
func (l *Leave) Editable() bool {
	return l.Status == LeaveStatusPending
}

// CoversDate true jika tanggal (YYYY-MM-DD) jatuh di dalam rentang pengajuan.
// Perbandingan string aman karena format tanggalnya terurut leksikografis.
func (l *Leave) CoversDate(tanggal string) bool {
	return l.StartDate <= tanggal && tanggal <= l.EndDate
}
