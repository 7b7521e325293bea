package controller

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"protokolku_backend/internals/constants"
	activityLogModel "protokolku_backend/internals/features/activity/model"
	activityService "protokolku_backend/internals/features/activity/service"
	"protokolku_backend/internals/features/users/user/dto"
	"protokolku_backend/internals/features/users/user/model"
	helper "protokolku_backend/internals/helpers"
	authMiddleware "protokolku_backend/internals/middlewares/auth"
)

var validate = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// List: GET /users — semua user + 20 aktivitas terbaru.
func (ctrl *UserController) List(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := ctrl.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("[ERROR] Gagal ambil data user: %v", err)
		users = []model.UserModel{}
	}

	type activityRow struct {
		activityLogModel.ActivityLogModel
		Username *string `json:"username" gorm:"column:username"`
	}
	var recent []activityRow
	err := ctrl.DB.Table("activity_logs AS al").
		Select("al.*, u.username").
		Joins("LEFT JOIN users u ON al.user_id = u.id").
		Order("al.created_at DESC").
		Limit(20).
		Scan(&recent).Error
	if err != nil {
		log.Printf("[ERROR] Gagal ambil activity logs: %v", err)
		recent = []activityRow{}
	}

	return helper.Success(c, "Data user", fiber.Map{
		"users":           users,
		"recent_activity": recent,
	})
}

// Create: POST /users (admin only).
func (ctrl *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Password != req.ConfirmPassword {
		return helper.Error(c, fiber.StatusBadRequest, "Passwords do not match")
	}
	if !constants.ValidRole(req.Role) {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid role")
	}

	var existing int64
	err := ctrl.DB.Model(&model.UserModel{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&existing).Error
	if err != nil {
		log.Printf("[ERROR] Gagal cek user existing: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Database error")
	}
	if existing > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	actor := authMiddleware.MustIdentity(c)
	user := model.UserModel{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    helper.NowWIB(),
	}
	if actor.UserID > 0 {
		uid := actor.UserID
		user.CreatedBy = &uid
	}

	if err := ctrl.DB.Create(&user).Error; err != nil {
		log.Printf("[ERROR] Gagal membuat user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	activityService.RecordFromRequest(ctrl.DB, c, activityLogModel.ActionCreateUser,
		"user", strconv.Itoa(int(user.ID)), fiber.Map{"username": user.Username, "role": user.Role})

	if helper.WantsJSON(c) {
		return helper.SuccessWithCode(c, fiber.StatusCreated, "User berhasil dibuat", user)
	}
	return c.Redirect("/users")
}

// ToggleStatus: POST /users/:id/toggle-status — aktif/nonaktif user lain.
func (ctrl *UserController) ToggleStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	actor := authMiddleware.MustIdentity(c)
	if uint(id) == actor.UserID && actor.Kind == authMiddleware.KindStoredUser {
		return helper.Error(c, fiber.StatusBadRequest, "Cannot disable your own account")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Database error")
	}

	newStatus := !user.IsActive
	if err := ctrl.DB.Model(&user).Update("is_active", newStatus).Error; err != nil {
		log.Printf("[ERROR] Gagal update status user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update user status")
	}

	action := activityLogModel.ActionDeactivateUser
	verb := "deactivated"
	if newStatus {
		action = activityLogModel.ActionActivateUser
		verb = "activated"
	}
	activityService.RecordFromRequest(ctrl.DB, c, action, "user", strconv.Itoa(int(user.ID)),
		fiber.Map{"username": user.Username, "detail": fmt.Sprintf("User %s %s", user.Username, verb)})

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("User %s successfully", verb),
	})
}

// ResetPassword: POST /users/:id/reset-password (admin only).
func (ctrl *UserController) ResetPassword(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Password must be at least 6 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 10)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to reset password")
	}

	res := ctrl.DB.Model(&model.UserModel{}).Where("id = ?", uint(id)).
		Update("password_hash", string(hash))
	if res.Error != nil {
		log.Printf("[ERROR] Gagal reset password: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to reset password")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	actor := authMiddleware.MustIdentity(c)
	activityService.RecordFromRequest(ctrl.DB, c, activityLogModel.ActionResetPassword,
		"user", c.Params("id"), fiber.Map{"by": actor.Username})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset successfully",
	})
}
