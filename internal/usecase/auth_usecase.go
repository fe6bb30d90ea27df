package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	"github.com/maheshmohan7319/GOODINSIDE/internal/infra/storage"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

const profileImageFolder = "profile"

// 入力検証（validatorパッケージが実装）
type AuthValidator interface {
	ValidateRegister(phone, password string) error
	ValidateLogin(phone, password string) error
	ValidatePassword(password string) error
	ValidateEmail(email string) error
}

type AuthUsecase struct {
	cfg       config.Config
	users     repo.UserRepository
	audits    repo.AuditLogRepository
	images    storage.ImageStore
	validator AuthValidator
	hasher    PasswordHasher

	logger *zap.Logger
	now    Clock
	newID  IDGenerator
}

// DI
func NewAuthUsecase(
	cfg config.Config,
	users repo.UserRepository,
	audits repo.AuditLogRepository,
	images storage.ImageStore,
	validator AuthValidator,
	hasher PasswordHasher,
	logger *zap.Logger,
) *AuthUsecase {
	if hasher == nil {
		hasher = NewBcryptPasswordHasher(cfg.BcryptCost)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		audits:    audits,
		images:    images,
		validator: validator,
		hasher:    hasher,
		logger:    logger,
		now:       systemClock,
		newID:     newUUID,
	}
}

// テスト用
func (u *AuthUsecase) SetClock(now Clock) { u.now = now }

type AuthRegisterRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type AuthLoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// 空文字は変更なし
type UpdateProfileRequest struct {
	Email string
	Name  string
	Image *ImageUpload
}

// パスワードを含まないユーザー
type UserDTO struct {
	ID          string     `json:"id"`
	PhoneNumber string     `json:"phoneNumber"`
	Role        model.Role `json:"role"`
	Email       string     `json:"email,omitempty"`
	Name        string     `json:"name,omitempty"`
	Image       string     `json:"image,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type AuthResult struct {
	Token     string  `json:"token"`
	TokenType string  `json:"tokenType"`
	ExpiresIn int     `json:"expiresIn"`
	User      UserDTO `json:"user"`
}

// 管理者ならUsers、それ以外はUser
type GetUserResult struct {
	User  *UserDTO
	Users []UserDTO
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Email:       u.Email,
		Name:        u.Name,
		Image:       u.Image,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// 会員登録。ロールは常にCustomer
func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthResult, error) {
	phone := strings.TrimSpace(req.PhoneNumber)
	if err := u.validator.ValidateRegister(phone, req.Password); err != nil {
		return nil, err
	}

	existing, err := u.users.FindByPhone(ctx, phone)
	if err == nil && existing != nil {
		return nil, ErrConflict("User already exists")
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, u.internal("find user by phone", err)
	}

	hashed, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, u.internal("hash password", err)
	}

	now := u.now()
	user := &model.User{
		ID:           u.newID(),
		PhoneNumber:  phone,
		PasswordHash: hashed,
		Role:         model.RoleCustomer,
		TokenVersion: 0,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		//同時登録
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrConflict("User already exists")
		}
		return nil, u.internal("create user", err)
	}

	u.logger.Info("user registered", zap.String("user_id", user.ID))
	return u.issue(user)
}

// ログイン
func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthResult, error) {
	phone := strings.TrimSpace(req.PhoneNumber)
	if err := u.validator.ValidateLogin(phone, req.Password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByPhone(ctx, phone)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnauthorized("invalid phone number or password")
	}
	if err != nil {
		return nil, u.internal("find user by phone", err)
	}

	if !u.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrUnauthorized("invalid phone number or password")
	}
	//停止ユーザー
	if !user.IsActive {
		return nil, ErrForbidden("user is inactive")
	}

	return u.issue(user)
}

// 管理者は全ユーザー、それ以外は自分だけ
func (u *AuthUsecase) GetUser(ctx context.Context, id Identity) (GetUserResult, error) {
	if err := requireUser(id); err != nil {
		return GetUserResult{}, err
	}

	me, err := u.findUser(ctx, id.UserID)
	if err != nil {
		return GetUserResult{}, err
	}

	if !me.IsAdmin() {
		dto := toUserDTO(me)
		return GetUserResult{User: &dto}, nil
	}

	all, err := u.users.List(ctx)
	if err != nil {
		return GetUserResult{}, u.internal("list users", err)
	}
	out := make([]UserDTO, 0, len(all))
	for i := range all {
		out = append(out, toUserDTO(&all[i]))
	}
	return GetUserResult{Users: out}, nil
}

// パスワード変更。発行済みトークンは失効させる
func (u *AuthUsecase) ChangePassword(ctx context.Context, id Identity, req ChangePasswordRequest) error {
	if err := requireUser(id); err != nil {
		return err
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return ErrValidation("Please provide both current and new passwords.")
	}
	if err := u.validator.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	user, err := u.findUser(ctx, id.UserID)
	if err != nil {
		return err
	}
	if !u.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
		return ErrUnauthorized("Current password is incorrect.")
	}

	hashed, err := u.hasher.Hash(req.NewPassword)
	if err != nil {
		return u.internal("hash password", err)
	}
	user.PasswordHash = hashed
	user.UpdatedAt = u.now()

	if err := u.users.Update(ctx, user); err != nil {
		return u.internal("update user", err)
	}
	if err := u.users.IncrementTokenVersion(ctx, user.ID); err != nil {
		return u.internal("increment token version", err)
	}
	return nil
}

// プロフィール更新。画像を差し替えたら古い画像は消す
func (u *AuthUsecase) UpdateProfile(ctx context.Context, id Identity, req UpdateProfileRequest) (UserDTO, error) {
	if err := requireUser(id); err != nil {
		return UserDTO{}, err
	}
	email := strings.TrimSpace(req.Email)
	if err := u.validator.ValidateEmail(email); err != nil {
		return UserDTO{}, err
	}

	user, err := u.findUser(ctx, id.UserID)
	if err != nil {
		return UserDTO{}, err
	}

	if email != "" {
		user.Email = email
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}

	oldImage := ""
	if req.Image.present() {
		url, err := uploadImage(ctx, u.images, profileImageFolder, req.Image)
		if err != nil {
			return UserDTO{}, u.internal("upload profile image", err)
		}
		oldImage = user.Image
		user.Image = url
	}

	user.UpdatedAt = u.now()
	if err := u.users.Update(ctx, user); err != nil {
		return UserDTO{}, u.internal("update user", err)
	}

	deleteImage(ctx, u.images, u.logger, oldImage)
	return toUserDTO(user), nil
}

// 強制ログアウト（管理者）
func (u *AuthUsecase) ForceLogout(ctx context.Context, id Identity, targetUserID string) error {
	if err := requireAdmin(id); err != nil {
		return err
	}
	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		return ErrValidation("invalid id")
	}

	target, err := u.findUser(ctx, targetUserID)
	if err != nil {
		return err
	}

	if err := u.users.IncrementTokenVersion(ctx, target.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound("User not found")
		}
		return u.internal("increment token version", err)
	}

	entry := model.AuditLog{
		ID:           u.newID(),
		ActorUserID:  id.UserID,
		Action:       model.AuditActionForceLogout,
		ResourceType: model.AuditResourceUser,
		ResourceID:   target.ID,
		BeforeJSON:   toJSON(map[string]int{"tokenVersion": target.TokenVersion}),
		AfterJSON:    toJSON(map[string]int{"tokenVersion": target.TokenVersion + 1}),
		CreatedAt:    u.now(),
	}
	if err := u.audits.Create(ctx, entry); err != nil {
		u.logger.Warn("audit log write failed",
			zap.String("action", string(entry.Action)),
			zap.String("user_id", target.ID),
			zap.Error(err),
		)
	}
	return nil
}

// CLIから管理者を作る。既存ユーザーなら昇格してパスワードを置き換える
func (u *AuthUsecase) CreateAdmin(ctx context.Context, phone, password string) (UserDTO, bool, error) {
	phone = strings.TrimSpace(phone)
	if err := u.validator.ValidateRegister(phone, password); err != nil {
		return UserDTO{}, false, err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return UserDTO{}, false, u.internal("hash password", err)
	}
	now := u.now()

	existing, err := u.users.FindByPhone(ctx, phone)
	switch {
	case err == nil:
		existing.Role = model.RoleAdmin
		existing.PasswordHash = hashed
		existing.IsActive = true
		existing.UpdatedAt = now
		if err := u.users.Update(ctx, existing); err != nil {
			return UserDTO{}, false, u.internal("update user", err)
		}
		if err := u.users.IncrementTokenVersion(ctx, existing.ID); err != nil {
			return UserDTO{}, false, u.internal("increment token version", err)
		}
		return toUserDTO(existing), false, nil
	case !errors.Is(err, repo.ErrNotFound):
		return UserDTO{}, false, u.internal("find user by phone", err)
	}

	user := &model.User{
		ID:           u.newID(),
		PhoneNumber:  phone,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return UserDTO{}, false, u.internal("create user", err)
	}
	return toUserDTO(user), true, nil
}

func (u *AuthUsecase) findUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound("User not found")
	}
	if err != nil {
		return nil, u.internal("find user", err)
	}
	return user, nil
}

func (u *AuthUsecase) issue(user *model.User) (*AuthResult, error) {
	token, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return nil, u.internal("sign access token", err)
	}
	return &AuthResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User:      toUserDTO(user),
	}, nil
}

// HS256。tvはTokenVersionGuardで照合する
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, int, error) {
	now := u.now()
	ttl := u.cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"tv":   user.TokenVersion,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int(ttl.Seconds()), nil
}

func (u *AuthUsecase) internal(op string, err error) error {
	u.logger.Error(op, zap.Error(err))
	return ErrInternal(err)
}
