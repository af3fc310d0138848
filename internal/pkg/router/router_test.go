package router

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/Yatube/app/controllers"
	"github.com/ManuelReschke/Yatube/app/models"
	"github.com/ManuelReschke/Yatube/app/repository"
	"github.com/ManuelReschke/Yatube/internal/pkg/cache"
	"github.com/ManuelReschke/Yatube/internal/pkg/database"
	"github.com/ManuelReschke/Yatube/internal/pkg/pagecache"
	"github.com/ManuelReschke/Yatube/internal/pkg/storage"
	"github.com/ManuelReschke/Yatube/views"
)

const testPassword = "correct-horse"

type testEnv struct {
	app       *fiber.App
	repos     *repository.Repositories
	pages     *pagecache.PageCache
	mediaRoot string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCSRF(t, false)
}

func newTestEnvWithCSRF(t *testing.T, csrfEnabled bool) *testEnv {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	repos := repository.NewRepositories(db)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	pageStore := redis.New(redis.Config{Host: mr.Host(), Port: port, Database: cache.DBPages})
	t.Cleanup(func() { _ = pageStore.Close() })
	pages := pagecache.New(pageStore, 20*time.Second)

	root := t.TempDir()
	app := fiber.New(fiber.Config{
		Views:        views.NewEngine(),
		ErrorHandler: controllers.ErrorHandler,
	})
	InstallRouter(app, Options{
		Repos:       repos,
		Media:       storage.NewLocal(root, "/media"),
		MediaURL:    "/media",
		MediaRoot:   root,
		PageCache:   pages,
		DisableCSRF: !csrfEnabled,
	})

	return &testEnv{app: app, repos: repos, pages: pages, mediaRoot: root}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username}
	require.NoError(t, u.SetPassword(testPassword))
	require.NoError(t, e.repos.User.Create(u))
	return u
}

func (e *testEnv) createPost(t *testing.T, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()
	p := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, e.repos.Post.Create(p))
	return p
}

func (e *testEnv) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, e.repos.Group.Create(g))
	return g
}

// client keeps the cookies of one browser session
type client struct {
	env     *testEnv
	cookies map[string]*http.Cookie
}

func (e *testEnv) guest() *client {
	return &client{env: e, cookies: map[string]*http.Cookie{}}
}

func (e *testEnv) login(t *testing.T, username string) *client {
	t.Helper()
	c := e.guest()
	resp := c.postForm(t, "/auth/login", url.Values{"username": {username}, "password": {testPassword}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	return c
}

func (c *client) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	resp, err := c.env.app.Test(req, -1)
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		c.cookies[ck.Name] = ck
	}
	return resp
}

func (c *client) get(t *testing.T, target string) (*http.Response, string) {
	t.Helper()
	resp := c.do(t, httptest.NewRequest(http.MethodGet, target, nil))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (c *client) postForm(t *testing.T, target string, values url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(t, req)
}

// logout posts the nav logout form as a page served from origin would
func (c *client) logout(t *testing.T, origin string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return c.do(t, req)
}

func (c *client) postMultipart(t *testing.T, target string, fields map[string]string, filename string, data []byte) *http.Response {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(t, req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 10))))
	return buf.Bytes()
}

func postCount(t *testing.T, e *testEnv) int64 {
	t.Helper()
	n, err := e.repos.Post.Count()
	require.NoError(t, err)
	return n
}

func TestCreatePostAuthenticated(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "leo")
	group := e.createGroup(t, "cats")
	c := e.login(t, "leo")

	resp, body := c.get(t, "/new")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="text"`)
	assert.Contains(t, body, group.Title)

	before := postCount(t, e)
	resp = c.postMultipart(t, "/new", map[string]string{
		"text":  "A brand new post",
		"group": strconv.FormatUint(uint64(group.ID), 10),
	}, "", nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Equal(t, before+1, postCount(t, e))

	posts, err := e.repos.Post.List(0, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "A brand new post", posts[0].Text)
	assert.Equal(t, "leo", posts[0].Author.Username)
	require.NotNil(t, posts[0].GroupID)
	assert.Equal(t, group.ID, *posts[0].GroupID)
}

func TestCreatePostUnauthenticated(t *testing.T) {
	e := newTestEnv(t)
	before := postCount(t, e)

	resp := e.guest().postMultipart(t, "/new", map[string]string{"text": "sneaky"}, "", nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login?next=%2Fnew", resp.Header.Get("Location"))
	assert.Equal(t, before, postCount(t, e))
}

func TestCreatePostValidationErrors(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "leo")
	c := e.login(t, "leo")

	resp := c.postMultipart(t, "/new", map[string]string{"text": ""}, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "This field is required.")

	resp = c.postMultipart(t, "/new", map[string]string{"text": "x", "group": "42"}, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Select a valid choice.")

	assert.Zero(t, postCount(t, e))
}

func TestUploadWithDisallowedExtensionIsRejected(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	c := e.login(t, "leo")

	resp := c.postMultipart(t, "/new", map[string]string{"text": "with a virus"}, "virus.exe", pngBytes(t))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "File extension &#39;exe&#39; is not allowed.")
	assert.Zero(t, postCount(t, e))

	// editing with the same file leaves the stored post untouched
	post := e.createPost(t, leo, nil, "clean post")
	resp = c.postMultipart(t, fmt.Sprintf("/leo/%d/edit", post.ID), map[string]string{"text": "changed"}, "virus.exe", pngBytes(t))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	reloaded, err := e.repos.Post.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "clean post", reloaded.Text)
	assert.Empty(t, reloaded.Image)

	entries, err := os.ReadDir(e.mediaRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadTruncatedImageIsRejected(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "leo")
	c := e.login(t, "leo")

	resp := c.postMultipart(t, "/new", map[string]string{"text": "broken picture"}, "broken.png", pngBytes(t)[:40])
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Upload a valid image.")
	assert.Zero(t, postCount(t, e))

	entries, err := os.ReadDir(e.mediaRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadImageShowsOnPages(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "leo")
	group := e.createGroup(t, "pics")
	c := e.login(t, "leo")

	resp := c.postMultipart(t, "/new", map[string]string{
		"text":  "post with picture",
		"group": strconv.FormatUint(uint64(group.ID), 10),
	}, "picture.png", pngBytes(t))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	posts, err := e.repos.Post.List(0, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	post := posts[0]
	require.True(t, strings.HasPrefix(post.Image, "posts/"))

	_, err = os.Stat(filepath.Join(e.mediaRoot, filepath.FromSlash(post.Image)))
	assert.NoError(t, err)

	imgID := fmt.Sprintf(`id="image_%d"`, post.ID)
	for _, page := range []string{"/", "/leo", "/group/pics", fmt.Sprintf("/leo/%d", post.ID)} {
		_, body := e.guest().get(t, page)
		assert.Contains(t, body, imgID, page)
	}

	resp, _ = e.guest().get(t, "/media/"+post.Image)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNewPostVisibleEverywhere(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "leo")
	c := e.login(t, "leo")

	resp := c.postMultipart(t, "/new", map[string]string{"text": "visible everywhere"}, "", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.NoError(t, e.pages.Clear())

	posts, err := e.repos.Post.List(0, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	for _, page := range []string{"/", "/leo", fmt.Sprintf("/leo/%d", posts[0].ID)} {
		resp, body := e.guest().get(t, page)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, page)
		assert.Contains(t, body, "visible everywhere", page)
	}
}

func TestEditPostByAuthor(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	post := e.createPost(t, leo, nil, "original text")
	c := e.login(t, "leo")

	resp, body := c.get(t, fmt.Sprintf("/leo/%d/edit", post.ID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "original text")

	resp = c.postMultipart(t, fmt.Sprintf("/leo/%d/edit", post.ID), map[string]string{"text": "edited text"}, "", nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/leo/%d", post.ID), resp.Header.Get("Location"))

	reloaded, err := e.repos.Post.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited text", reloaded.Text)
	assert.WithinDuration(t, post.PubDate, reloaded.PubDate, time.Second)
	assert.EqualValues(t, 1, postCount(t, e))

	require.NoError(t, e.pages.Clear())
	for _, page := range []string{"/", "/leo", fmt.Sprintf("/leo/%d", post.ID)} {
		_, body := e.guest().get(t, page)
		assert.Contains(t, body, "edited text", page)
	}
}

func TestEditPostByNonAuthor(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	e.createUser(t, "anna")
	post := e.createPost(t, leo, nil, "leo's words")
	anna := e.login(t, "anna")

	editURL := fmt.Sprintf("/leo/%d/edit", post.ID)
	detailURL := fmt.Sprintf("/leo/%d", post.ID)

	resp, _ := anna.get(t, editURL)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, detailURL, resp.Header.Get("Location"))

	resp = anna.postMultipart(t, editURL, map[string]string{"text": "hijacked"}, "", nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, detailURL, resp.Header.Get("Location"))

	reloaded, err := e.repos.Post.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo's words", reloaded.Text)
}

func TestEditPostRequiresLogin(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	post := e.createPost(t, leo, nil, "text")

	resp, _ := e.guest().get(t, fmt.Sprintf("/leo/%d/edit", post.ID))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/auth/login?next="))
}

func TestFollowAndUnfollow(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	anna := e.createUser(t, "anna")
	e.createUser(t, "ivan")
	e.createPost(t, anna, nil, "anna writes")

	leoClient := e.login(t, "leo")
	ivanClient := e.login(t, "ivan")

	resp := leoClient.postForm(t, "/anna/follow", url.Values{})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/follow", resp.Header.Get("Location"))
	// following twice keeps a single row
	leoClient.postForm(t, "/anna/follow", url.Values{})

	followers, err := e.repos.Follow.CountFollowers(anna.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followers)
	exists, err := e.repos.Follow.Exists(leo.ID, anna.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, body := leoClient.get(t, "/follow")
	assert.Contains(t, body, "anna writes")
	_, body = ivanClient.get(t, "/follow")
	assert.NotContains(t, body, "anna writes")

	_, body = leoClient.get(t, "/anna")
	assert.Contains(t, body, "/anna/unfollow")
	assert.Contains(t, body, `<span id="followers_count">1</span>`)

	resp = leoClient.postForm(t, "/anna/unfollow", url.Values{})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/follow", resp.Header.Get("Location"))
	exists, err = e.repos.Follow.Exists(leo.ID, anna.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, body = leoClient.get(t, "/follow")
	assert.NotContains(t, body, "anna writes")
}

func TestFollowSelfIsIgnored(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	c := e.login(t, "leo")

	resp := c.postForm(t, "/leo/follow", url.Values{})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/follow", resp.Header.Get("Location"))

	n, err := e.repos.Follow.CountFollowing(leo.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFollowRequiresLogin(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "anna")

	resp := e.guest().postForm(t, "/anna/follow", url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp, _ = e.guest().get(t, "/follow")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestComments(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	e.createUser(t, "anna")
	post := e.createPost(t, leo, nil, "discuss me")
	detailURL := fmt.Sprintf("/leo/%d", post.ID)

	_, body := e.guest().get(t, detailURL)
	assert.NotContains(t, body, `id="adding_comment"`)

	resp := e.guest().postForm(t, detailURL+"/comment", url.Values{"text": {"anonymous remark"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	n, err := e.repos.Comment.CountByPost(post.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	anna := e.login(t, "anna")
	_, body = anna.get(t, detailURL)
	assert.Contains(t, body, `id="adding_comment"`)

	resp = anna.postForm(t, detailURL+"/comment", url.Values{"text": {"thoughtful remark"}})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, detailURL, resp.Header.Get("Location"))

	_, body = e.guest().get(t, detailURL)
	assert.Contains(t, body, "thoughtful remark")
	assert.NotContains(t, body, "anonymous remark")

	// blank comments are not stored
	anna.postForm(t, detailURL+"/comment", url.Values{"text": {"  "}})
	n, err = e.repos.Comment.CountByPost(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestCommentOnMissingPost(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "anna")
	c := e.login(t, "anna")

	resp := c.postForm(t, "/anna/999/comment", url.Values{"text": {"hello"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	e.createUser(t, "anna")
	post := e.createPost(t, leo, nil, "text")

	for _, path := range []string{
		"/definitely/not/a/real/page/here",
		"/nobody",
		"/group/missing",
		"/leo/999",
		fmt.Sprintf("/anna/%d", post.ID),
	} {
		resp, body := e.guest().get(t, path)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, body, "Page not found", path)
	}
}

func TestPagination(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	group := e.createGroup(t, "many")
	for i := 0; i < 13; i++ {
		e.createPost(t, leo, group, fmt.Sprintf("post number %d", i))
	}

	cases := map[string]int{
		"/":                   10,
		"/?page=2":            3,
		"/?page=abc":          10,
		"/?page=99":           3,
		"/leo":                10,
		"/leo?page=2":         3,
		"/group/many":         10,
		"/group/many?page=2":  3,
		"/group/many?page=-1": 3,
	}
	for target, want := range cases {
		resp, body := e.guest().get(t, target)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, target)
		assert.Equal(t, want, strings.Count(body, `class="card"`), target)
	}
}

func TestIndexCacheWindow(t *testing.T) {
	e := newTestEnv(t)
	leo := e.createUser(t, "leo")
	e.createPost(t, leo, nil, "first cached post")
	c := e.login(t, "leo")

	_, body := e.guest().get(t, "/")
	assert.Contains(t, body, "first cached post")

	resp := c.postMultipart(t, "/new", map[string]string{"text": "second fresh post"}, "", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	_, body = e.guest().get(t, "/")
	assert.Contains(t, body, "first cached post")
	assert.NotContains(t, body, "second fresh post")

	require.NoError(t, e.pages.Clear())
	_, body = e.guest().get(t, "/")
	assert.Contains(t, body, "second fresh post")
}

func TestSignupLoginLogout(t *testing.T) {
	e := newTestEnv(t)
	c := e.guest()

	resp, body := c.get(t, "/auth/signup")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="password2"`)

	resp = c.postForm(t, "/auth/signup", url.Values{
		"username": {"newbie"}, "email": {"newbie@example.com"},
		"password1": {testPassword}, "password2": {testPassword},
	})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))

	resp = c.postForm(t, "/auth/signup", url.Values{
		"username": {"newbie"}, "password1": {testPassword}, "password2": {testPassword},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "A user with that username already exists.")

	resp = c.postForm(t, "/auth/login", url.Values{"username": {"newbie"}, "password": {"nope"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Please enter a correct username and password.")

	resp = c.postForm(t, "/auth/login?next=%2Ffollow", url.Values{"username": {"newbie"}, "password": {testPassword}})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/follow", resp.Header.Get("Location"))

	resp, _ = c.get(t, "/follow")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = c.logout(t, "http://example.com")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = c.get(t, "/follow")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestLoginIgnoresForeignNext(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "leo")

	resp := e.guest().postForm(t, "/auth/login?next=https%3A%2F%2Fevil.example", url.Values{
		"username": {"leo"}, "password": {testPassword},
	})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	e := newTestEnvWithCSRF(t, true)
	e.createUser(t, "leo")

	resp := e.guest().postForm(t, "/auth/login", url.Values{"username": {"leo"}, "password": {testPassword}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestLogoutRejectsForeignOrigin(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "leo")
	c := e.login(t, "leo")

	// a third-party page cannot log the user out with a plain link or image
	resp, _ := c.get(t, "/auth/logout")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = c.logout(t, "https://evil.example")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp = c.logout(t, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = c.get(t, "/follow")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

var csrfInput = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

func TestLogoutWithCSRFEnabled(t *testing.T) {
	e := newTestEnvWithCSRF(t, true)
	e.createUser(t, "leo")
	c := e.guest()

	_, body := c.get(t, "/auth/login")
	m := csrfInput.FindStringSubmatch(body)
	require.Len(t, m, 2)

	resp := c.postForm(t, "/auth/login", url.Values{
		"username": {"leo"}, "password": {testPassword}, "_csrf": {m[1]},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	// the logout form carries no token because the cached home page would serve a stale one
	_, body = c.get(t, "/follow")
	assert.Contains(t, body, `action="/auth/logout"`)

	resp = c.logout(t, "http://example.com")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp, _ = c.get(t, "/follow")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestHomeRedirectCarriesNoFlash(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "leo")
	c := e.login(t, "leo")

	// prime the shared home page
	resp, _ := c.get(t, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = c.postMultipart(t, "/new", map[string]string{"text": "quiet post"}, "", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	for _, ck := range resp.Cookies() {
		assert.False(t, ck.Name == "fiber-app-flash" && ck.Value != "", "flash cookie set on redirect home")
	}

	resp, _ = c.get(t, "/")
	assert.Equal(t, "hit", resp.Header.Get("X-Cache"))

	_, body := c.get(t, "/leo")
	assert.Contains(t, body, "quiet post")
	assert.NotContains(t, body, "Your post has been published.")

	// pages outside the cache still get their message
	post, err := e.repos.Post.List(0, 1)
	require.NoError(t, err)
	require.Len(t, post, 1)
	resp = c.postMultipart(t, fmt.Sprintf("/leo/%d/edit", post[0].ID), map[string]string{"text": "edited quietly"}, "", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	_, body = c.get(t, fmt.Sprintf("/leo/%d", post[0].ID))
	assert.Contains(t, body, "Your post has been saved.")
}
