package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
)

const (
	msgMissingToken    = "отсутствует токен авторизации"
	msgInvalidToken    = "некорректный или просроченный токен"
	msgUserNotFound    = "пользователь не найден"
	msgUserInactive    = "учетная запись отключена"
	msgAuthUnavailable = "не удалось проверить пользователя"
)

var (
	// ErrInvalidToken возвращается, если токен не прошел проверку
	ErrInvalidToken = errors.New("middleware: invalid token")

	// ErrUserNotFound возвращается репозиторием пользователей, если пользователя нет
	// Подменяется в main на ошибку конкретного репозитория
	ErrUserNotFound = errors.New("middleware: user not found")
)

// Отключение пользователя вступает в силу не позже, чем через CacheTTL
const (
	defaultUserCacheTTL = 30 * time.Second
	maxUserCacheTTL     = 5 * time.Minute
)

type contextKey string

const principalKey contextKey = "principal"

// UserRepository источник пользователей для проверки токена
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AuthConfig параметры проверки токенов
type AuthConfig struct {
	Secret   string
	Issuer   string
	CacheTTL time.Duration
}

// Authenticator проверяет bearer токен и кладет Principal в контекст
// Активные пользователи кэшируются на CacheTTL (не больше maxUserCacheTTL)
type Authenticator struct {
	users       UserRepository
	notFoundErr error
	cfg         AuthConfig
	cache       *cache.Cache
	logger      Logger
}

// NewAuthenticator создает новый Authenticator
// notFoundErr - ошибка репозитория, означающая отсутствие пользователя
func NewAuthenticator(users UserRepository, notFoundErr error, cfg AuthConfig, logger Logger) *Authenticator {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultUserCacheTTL
	}
	if cfg.CacheTTL > maxUserCacheTTL {
		cfg.CacheTTL = maxUserCacheTTL
	}
	if notFoundErr == nil {
		notFoundErr = ErrUserNotFound
	}
	return &Authenticator{
		users:       users,
		notFoundErr: notFoundErr,
		cfg:         cfg,
		cache:       cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:      logger,
	}
}

// Auth middleware аутентификации
// Ожидает заголовок "Authorization: Bearer <jwt>", subject токена - ID пользователя
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			a.logger.Warn("Auth - Missing bearer token: %s %s", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		userID, err := a.ParseToken(token)
		if err != nil {
			a.logger.Warn("Auth - Invalid token: %s %s, error=%v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		user, err := a.loadUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, a.notFoundErr) {
				a.logger.Warn("Auth - User not found: user_id=%d", userID)
				handlers.RespondUnauthorized(w, msgUserNotFound)
				return
			}
			a.logger.Error("Auth - Failed to load user: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgAuthUnavailable)
			return
		}

		if !user.IsActive {
			a.logger.Warn("Auth - Inactive user: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserInactive)
			return
		}

		ctx := WithPrincipal(r.Context(), domain.NewPrincipal(user))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ParseToken проверяет подпись и срок действия токена и возвращает ID пользователя
func (a *Authenticator) ParseToken(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.cfg.Secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}
	if a.cfg.Issuer != "" && !claims.VerifyIssuer(a.cfg.Issuer, true) {
		return 0, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: invalid subject %q", ErrInvalidToken, claims.Subject)
	}

	return userID, nil
}

func (a *Authenticator) loadUser(ctx context.Context, userID int64) (*domain.User, error) {
	key := cacheKey(userID)
	if cached, found := a.cache.Get(key); found {
		return cached.(*domain.User), nil
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Отключенные пользователи не кэшируются, повторное включение действует сразу
	if user.IsActive {
		a.cache.Set(key, user, cache.DefaultExpiration)
	}
	return user, nil
}

// WithPrincipal кладет Principal в контекст
func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipal извлекает Principal из контекста
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func cacheKey(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}
