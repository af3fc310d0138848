package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Yatube/app/models"
	"github.com/ManuelReschke/Yatube/app/repository"
	"github.com/ManuelReschke/Yatube/internal/pkg/paginator"
	"github.com/ManuelReschke/Yatube/internal/pkg/usercontext"
	"github.com/ManuelReschke/Yatube/internal/pkg/utils"
	"github.com/ManuelReschke/Yatube/internal/pkg/viewmodel"
)

// followIndexURL is where follow and unfollow land
const followIndexURL = "/follow"

// ProfileController serves profiles, the subscription feed and follow actions
type ProfileController struct {
	repos *repository.Repositories
	media *Media
}

func NewProfileController(repos *repository.Repositories, media *Media) *ProfileController {
	return &ProfileController{repos: repos, media: media}
}

// profileData collects the header shown on profile and post pages
func profileData(c *fiber.Ctx, repos *repository.Repositories, author *models.User) (fiber.Map, error) {
	postsCount, err := repos.Post.CountByAuthor(author.ID)
	if err != nil {
		return nil, fmt.Errorf("count posts of %s: %w", author.Username, err)
	}
	followers, err := repos.Follow.CountFollowers(author.ID)
	if err != nil {
		return nil, fmt.Errorf("count followers of %s: %w", author.Username, err)
	}
	following, err := repos.Follow.CountFollowing(author.ID)
	if err != nil {
		return nil, fmt.Errorf("count following of %s: %w", author.Username, err)
	}

	viewer := usercontext.GetUserContext(c)
	isFollowing := false
	if viewer.IsLoggedIn && viewer.UserID != author.ID {
		isFollowing, err = repos.Follow.Exists(viewer.UserID, author.ID)
		if err != nil {
			return nil, fmt.Errorf("follow lookup: %w", err)
		}
	}

	return fiber.Map{
		"Author":         author,
		"Avatar":         utils.AvatarURL(author.Email, author.Username, 96),
		"PostsCount":     postsCount,
		"FollowerCount":  followers,
		"FollowingCount": following,
		"Following":      isFollowing,
		"IsSelf":         viewer.IsLoggedIn && viewer.UserID == author.ID,
	}, nil
}

// HandleProfile lists the posts of :username
func (pc *ProfileController) HandleProfile(c *fiber.Ctx) error {
	author, err := pc.repos.User.GetByUsername(c.Params("username"))
	if err != nil {
		return notFoundOr(err)
	}

	data, err := profileData(c, pc.repos, author)
	if err != nil {
		return err
	}

	page := paginator.New(c.Query("page"), data["PostsCount"].(int64), paginator.PerPage)
	posts, err := pc.repos.Post.ListByAuthor(author.ID, page.Offset(), page.Limit())
	if err != nil {
		return fmt.Errorf("list posts of %s: %w", author.Username, err)
	}

	data["Posts"] = viewmodel.NewPostCards(posts, pc.media)
	data["Page"] = page
	data["PageBase"] = profileURL(author.Username)
	return render(c, "posts/profile", author.FullName(), data)
}

// HandleFollowIndex lists posts of every author the current user follows
func (pc *ProfileController) HandleFollowIndex(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	total, err := pc.repos.Post.CountByFollower(userID)
	if err != nil {
		return fmt.Errorf("count followed posts: %w", err)
	}
	page := paginator.New(c.Query("page"), total, paginator.PerPage)

	posts, err := pc.repos.Post.ListByFollower(userID, page.Offset(), page.Limit())
	if err != nil {
		return fmt.Errorf("list followed posts: %w", err)
	}

	return render(c, "posts/follow", "Subscriptions", fiber.Map{
		"Posts":    viewmodel.NewPostCards(posts, pc.media),
		"Page":     page,
		"PageBase": followIndexURL,
	})
}

// HandleProfileFollow subscribes the current user to :username. Following yourself is
// silently ignored.
func (pc *ProfileController) HandleProfileFollow(c *fiber.Ctx) error {
	author, err := pc.repos.User.GetByUsername(c.Params("username"))
	if err != nil {
		return notFoundOr(err)
	}

	userID := usercontext.GetUserID(c)
	if author.ID != userID {
		if _, _, err := pc.repos.Follow.GetOrCreate(userID, author.ID); err != nil {
			return fmt.Errorf("follow %s: %w", author.Username, err)
		}
		return success(c, "You are now following @"+author.Username+".", followIndexURL)
	}

	return c.Redirect(followIndexURL, fiber.StatusFound)
}

// HandleProfileUnfollow removes the subscription of the current user to :username
func (pc *ProfileController) HandleProfileUnfollow(c *fiber.Ctx) error {
	author, err := pc.repos.User.GetByUsername(c.Params("username"))
	if err != nil {
		return notFoundOr(err)
	}

	if err := pc.repos.Follow.Delete(usercontext.GetUserID(c), author.ID); err != nil {
		return fmt.Errorf("unfollow %s: %w", author.Username, err)
	}

	return success(c, "You unfollowed @"+author.Username+".", followIndexURL)
}
