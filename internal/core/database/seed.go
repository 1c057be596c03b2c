package database

import (
	"time"

	"gorm.io/gorm"

	"skillloop/internal/domain"
	"skillloop/pkg/utils"
)

// AutoMigrate 平台全部表，api 和 admin 进程共用同一份清单。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.UserSkill{},
		&domain.Skill{},
		&domain.Session{},
		&domain.Review{},
	)
}

// 初始技能目录。ID 固定，保证不同环境种子一致。
var seedSkills = []domain.Skill{
	{ID: "s1", Name: "C Programming"},
	{ID: "s2", Name: "Logo Design"},
	{ID: "s3", Name: "Video Editing"},
	{ID: "s4", Name: "Python"},
	{ID: "s5", Name: "UI/UX Design"},
	{ID: "s6", Name: "Public Speaking"},
	{ID: "s7", Name: "React Development"},
	{ID: "s8", Name: "Financial Literacy"},
}

// Seed 空库时写入技能目录和演示账号（含一个管理员）。
// 幂等：有用户就什么都不做。演示账号口令统一是 password123。
func Seed(db *gorm.DB) error {
	var n int64
	if err := db.Model(&domain.User{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for i := range seedSkills {
		if err := db.FirstOrCreate(&seedSkills[i], "id = ?", seedSkills[i].ID).Error; err != nil {
			return err
		}
	}

	now := time.Now()
	hash := utils.HashPassword("password123")
	users := []domain.User{
		{
			ID: "u1", Email: "alice@krce.ac.in", PasswordHash: hash,
			Name: "Alice Johnson", Branch: "CSE", Year: 3,
			Bio:          "Passionate about React and UI design.",
			Availability: "Mon-Wed: 6 PM - 9 PM, Weekends flexible",
			AvatarURL:    "https://picsum.photos/seed/alice/200",
			TotalPoints:  50, RatingAvg: 4.8, RatingCount: 12,
			Role: domain.RoleStudent, CreatedAt: now,
			Skills: []domain.UserSkill{
				{ID: utils.NewID(), SkillID: "s7", Name: "React Development", Type: domain.SkillTypeCanTeach, Level: domain.LevelAdvanced},
				{ID: utils.NewID(), SkillID: "s5", Name: "UI/UX Design", Type: domain.SkillTypeCanTeach, Level: domain.LevelIntermediate},
				{ID: utils.NewID(), SkillID: "s8", Name: "Financial Literacy", Type: domain.SkillTypeWantToLearn, Level: domain.LevelBeginner},
			},
		},
		{
			ID: "u2", Email: "bob@krce.ac.in", PasswordHash: hash,
			Name: "Bob Smith", Branch: "ECE", Year: 2,
			Bio:          "Avid coder and Python enthusiast.",
			Availability: "Daily after 5 PM",
			AvatarURL:    "https://picsum.photos/seed/bob/200",
			TotalPoints:  30, RatingAvg: 4.2, RatingCount: 8,
			Role: domain.RoleStudent, CreatedAt: now.Add(time.Second),
			Skills: []domain.UserSkill{
				{ID: utils.NewID(), SkillID: "s4", Name: "Python", Type: domain.SkillTypeCanTeach, Level: domain.LevelAdvanced},
				{ID: utils.NewID(), SkillID: "s1", Name: "C Programming", Type: domain.SkillTypeCanTeach, Level: domain.LevelIntermediate},
				{ID: utils.NewID(), SkillID: "s3", Name: "Video Editing", Type: domain.SkillTypeWantToLearn, Level: domain.LevelBeginner},
			},
		},
		{
			ID: "admin1", Email: "admin@krce.ac.in", PasswordHash: hash,
			Name: "SkillLoop Admin", Branch: "Administration", Year: 0,
			Bio:          "Platform administrator.",
			Availability: "Office hours only",
			AvatarURL:    "https://picsum.photos/seed/admin/200",
			TotalPoints:  9999, RatingAvg: 5.0,
			Role: domain.RoleAdmin, CreatedAt: now.Add(2 * time.Second),
		},
	}

	return db.Create(&users).Error
}
