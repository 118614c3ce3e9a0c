package database

import (
	"log"

	"presensi-magang-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAll mengisi data awal: pengaturan kantor, akun super-admin, admin, dan
// beberapa peserta magang contoh. Aman dijalankan berulang (FirstOrCreate).
func SeedAll(db *gorm.DB) {
	// 1. Pengaturan kantor default
	pengaturan := model.DefaultSettings()
	db.Where(model.Settings{ID: model.SettingsID}).FirstOrCreate(&pengaturan)

	// 2. Akun super-admin pertama
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)

	superAdmin := model.User{
		Name:     "Super Administrator",
		Username: "superadmin",
		Email:    "superadmin@example.com",
		Password: string(hashedPassword),
		Role:     model.RoleSuperAdmin,
		Division: "Sekretariat",
	}
	result := db.FirstOrCreate(&superAdmin, model.User{Username: superAdmin.Username})
	if result.Error == nil {
		// Paksa sinkron password default meskipun akun sudah ada
		db.Model(&superAdmin).Update("password", string(hashedPassword))
		log.Println("Seeding super-admin berhasil!")
	}

	// 3. Akun admin pembimbing
	admin := model.User{
		Name:     "Pembimbing Magang",
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Role:     model.RoleAdmin,
		Division: "Informatika",
	}
	db.FirstOrCreate(&admin, model.User{Username: admin.Username})

	// 4. Peserta magang contoh
	interns := []model.User{
		{Name: "Budi Santoso", Username: "budi", Password: string(hashedPassword), Role: model.RoleIntern, Division: "Informatika"},
		{Name: "Sari Dewi", Username: "sari", Password: string(hashedPassword), Role: model.RoleIntern, Division: "Humas"},
	}
	for _, intern := range interns {
		db.FirstOrCreate(&intern, model.User{Username: intern.Username})
	}
}
