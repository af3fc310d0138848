package session

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/ManuelReschke/Yatube/internal/pkg/cache"
	"github.com/ManuelReschke/Yatube/internal/pkg/usercontext"
)

var sessionStore *session.Store

// NewSessionStore creates the cookie session store backed by redis database 1
func NewSessionStore() *session.Store {
	return NewSessionStoreWithStorage(cache.NewStorage(cache.DBSessions))
}

// NewSessionStoreWithStorage creates the store on the given storage; nil keeps sessions
// in process memory.
func NewSessionStoreWithStorage(storage fiber.Storage) *session.Store {
	sessionStore = session.New(session.Config{
		Storage:        storage,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		Expiration:     time.Hour * 24 * 14,
		KeyLookup:      "cookie:session_id",
	})

	return sessionStore
}

func GetSessionStore() *session.Store {
	return sessionStore
}

// Login starts a fresh session for the user. The session id is regenerated so an id
// issued before authentication cannot be reused.
func Login(c *fiber.Ctx, userID uint, username string) error {
	sess, err := get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("regenerate session: %w", err)
	}
	sess.Set(usercontext.KeyUserID, userID)
	sess.Set(usercontext.KeyUsername, username)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout destroys the current session
func Logout(c *fiber.Ctx) error {
	sess, err := get(c)
	if err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// CurrentUser reads the logged in user from the session. ok is false for anonymous
// requests.
func CurrentUser(c *fiber.Ctx) (userID uint, username string, ok bool, err error) {
	sess, err := get(c)
	if err != nil {
		return 0, "", false, err
	}
	userID, ok = sess.Get(usercontext.KeyUserID).(uint)
	if !ok || userID == 0 {
		return 0, "", false, nil
	}
	username, _ = sess.Get(usercontext.KeyUsername).(string)
	return userID, username, true, nil
}

func get(c *fiber.Ctx) (*session.Session, error) {
	if sessionStore == nil {
		return nil, fmt.Errorf("session store not initialized")
	}
	sess, err := sessionStore.Get(c)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}
