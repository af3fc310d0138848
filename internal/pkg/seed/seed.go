// Package seed fills a database with demo users, groups, posts, comments and follows for
// local development.
package seed

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Yatube/app/models"
	"github.com/ManuelReschke/Yatube/app/repository"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Options controls how much demo data is generated.
type Options struct {
	Users           int
	Groups          int
	PostsPerUser    int
	CommentsPerPost int
	// Password is shared by every generated account
	Password string
	// Seed makes the generated content reproducible when non-zero
	Seed int64
}

// DefaultOptions is a small but paginated data set.
func DefaultOptions() Options {
	return Options{
		Users:           5,
		Groups:          3,
		PostsPerUser:    12,
		CommentsPerPost: 2,
		Password:        "yatube-demo",
	}
}

// Result counts the rows written by Run.
type Result struct {
	Users    []*models.User
	Groups   []*models.Group
	Posts    int
	Comments int
	Follows  int
}

type Seeder struct {
	repos *repository.Repositories
	opts  Options
	faker *gofakeit.Faker
}

func New(repos *repository.Repositories, opts Options) *Seeder {
	return &Seeder{
		repos: repos,
		opts:  opts,
		faker: gofakeit.New(opts.Seed),
	}
}

// Run writes the demo data. Every user follows the next one in the list.
func (s *Seeder) Run() (*Result, error) {
	res := &Result{}

	for i := 0; i < s.opts.Groups; i++ {
		g, err := s.createGroup(i)
		if err != nil {
			return res, err
		}
		res.Groups = append(res.Groups, g)
	}

	for i := 0; i < s.opts.Users; i++ {
		u, err := s.createUser(i)
		if err != nil {
			return res, err
		}
		res.Users = append(res.Users, u)
	}

	for _, u := range res.Users {
		for i := 0; i < s.opts.PostsPerUser; i++ {
			post := &models.Post{Text: s.faker.Paragraph(1, 3, 12, "\n"), AuthorID: u.ID}
			if len(res.Groups) > 0 && s.faker.Number(0, 2) > 0 {
				post.GroupID = &res.Groups[s.faker.Number(0, len(res.Groups)-1)].ID
			}
			if err := s.repos.Post.Create(post); err != nil {
				return res, fmt.Errorf("create post: %w", err)
			}
			res.Posts++

			for j := 0; j < s.opts.CommentsPerPost; j++ {
				author := res.Users[s.faker.Number(0, len(res.Users)-1)]
				comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Text: s.faker.Sentence(8)}
				if err := s.repos.Comment.Create(comment); err != nil {
					return res, fmt.Errorf("create comment: %w", err)
				}
				res.Comments++
			}
		}
	}

	if len(res.Users) > 1 {
		for i, u := range res.Users {
			author := res.Users[(i+1)%len(res.Users)]
			if _, created, err := s.repos.Follow.GetOrCreate(u.ID, author.ID); err != nil {
				return res, fmt.Errorf("create follow: %w", err)
			} else if created {
				res.Follows++
			}
		}
	}

	log.Infof("seeded %d users, %d groups, %d posts, %d comments, %d follows",
		len(res.Users), len(res.Groups), res.Posts, res.Comments, res.Follows)
	return res, nil
}

func (s *Seeder) createUser(i int) (*models.User, error) {
	username := fmt.Sprintf("%s%d", nonSlug.ReplaceAllString(strings.ToLower(s.faker.FirstName()), ""), i+1)
	u, err := models.CreateUser(username, s.faker.Email(), s.opts.Password)
	if err != nil {
		return nil, fmt.Errorf("build user %q: %w", username, err)
	}
	u.FirstName = s.faker.FirstName()
	u.LastName = s.faker.LastName()
	if err := s.repos.User.Create(u); err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	return u, nil
}

func (s *Seeder) createGroup(i int) (*models.Group, error) {
	title := s.faker.HipsterWord()
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "group"
	}
	g := &models.Group{
		Title:       strings.ToUpper(title[:1]) + title[1:],
		Slug:        fmt.Sprintf("%s-%d", slug, i+1),
		Description: s.faker.Sentence(12),
	}
	if err := s.repos.Group.Create(g); err != nil {
		return nil, fmt.Errorf("create group %q: %w", g.Slug, err)
	}
	return g, nil
}
