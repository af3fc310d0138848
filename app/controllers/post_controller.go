package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Yatube/app/forms"
	"github.com/ManuelReschke/Yatube/app/models"
	"github.com/ManuelReschke/Yatube/app/repository"
	"github.com/ManuelReschke/Yatube/internal/pkg/paginator"
	"github.com/ManuelReschke/Yatube/internal/pkg/usercontext"
	"github.com/ManuelReschke/Yatube/internal/pkg/utils"
	"github.com/ManuelReschke/Yatube/internal/pkg/viewmodel"
)

// PostController serves the feeds and the post pages
type PostController struct {
	repos *repository.Repositories
	media *Media
}

func NewPostController(repos *repository.Repositories, media *Media) *PostController {
	return &PostController{repos: repos, media: media}
}

// HandleIndex lists every post, newest first
func (pc *PostController) HandleIndex(c *fiber.Ctx) error {
	total, err := pc.repos.Post.Count()
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	page := paginator.New(c.Query("page"), total, paginator.PerPage)

	posts, err := pc.repos.Post.List(page.Offset(), page.Limit())
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}

	return render(c, "posts/index", "Latest posts", fiber.Map{
		"Posts":    viewmodel.NewPostCards(posts, pc.media),
		"Page":     page,
		"PageBase": "/",
	})
}

// HandleGroupPosts lists the posts of the group identified by :slug
func (pc *PostController) HandleGroupPosts(c *fiber.Ctx) error {
	group, err := pc.repos.Group.GetBySlug(c.Params("slug"))
	if err != nil {
		return notFoundOr(err)
	}

	total, err := pc.repos.Post.CountByGroup(group.ID)
	if err != nil {
		return fmt.Errorf("count group posts: %w", err)
	}
	page := paginator.New(c.Query("page"), total, paginator.PerPage)

	posts, err := pc.repos.Post.ListByGroup(group.ID, page.Offset(), page.Limit())
	if err != nil {
		return fmt.Errorf("list group posts: %w", err)
	}

	return render(c, "posts/group", group.Title, fiber.Map{
		"Group":    group,
		"Posts":    viewmodel.NewPostCards(posts, pc.media),
		"Page":     page,
		"PageBase": "/group/" + group.Slug,
	})
}

// HandleNewPost shows and processes the post creation form
func (pc *PostController) HandleNewPost(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return pc.renderPostForm(c, &forms.PostForm{Errors: forms.FieldErrors{}}, nil)
	}

	form, err := forms.BindPostForm(c)
	if err != nil {
		return err
	}
	if !form.Validate(pc.repos.Group) {
		return pc.renderPostForm(c, form, nil)
	}

	post := &models.Post{AuthorID: usercontext.GetUserID(c)}
	form.Apply(post)
	if form.Image != nil {
		key, err := pc.media.Store(c.UserContext(), form.Image)
		if err != nil {
			return err
		}
		post.Image = key
	}

	if err := pc.repos.Post.Create(post); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	log.Infof("[Post] %s created post %d", usercontext.GetUsername(c), post.ID)

	return success(c, "Your post has been published.", homeURL)
}

// HandlePostEdit lets the author change text, group and image of a post. Everyone else
// is sent to the post page.
func (pc *PostController) HandlePostEdit(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}
	username := c.Params("username")
	post, err := pc.repos.Post.GetByIDAndAuthor(id, username)
	if err != nil {
		return notFoundOr(err)
	}
	if post.AuthorID != usercontext.GetUserID(c) {
		return c.Redirect(postURL(username, post.ID), fiber.StatusFound)
	}

	if c.Method() != fiber.MethodPost {
		return pc.renderPostForm(c, forms.NewPostFormFrom(post), post)
	}

	form, err := forms.BindPostForm(c)
	if err != nil {
		return err
	}
	if !form.Validate(pc.repos.Group) {
		return pc.renderPostForm(c, form, post)
	}

	form.Apply(post)
	if form.Image != nil {
		key, err := pc.media.Store(c.UserContext(), form.Image)
		if err != nil {
			return err
		}
		post.Image = key
	}

	if err := pc.repos.Post.Update(post); err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}

	return success(c, "Your post has been saved.", postURL(username, post.ID))
}

func (pc *PostController) renderPostForm(c *fiber.Ctx, form *forms.PostForm, post *models.Post) error {
	groups, err := pc.repos.Group.List()
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}

	data := fiber.Map{
		"Form":   form,
		"Groups": groups,
		"Action": "/new",
	}
	title := "New post"
	if post != nil {
		title = "Edit post"
		data["IsEdit"] = true
		data["Action"] = postURL(post.Author.Username, post.ID) + "/edit"
		if post.HasImage() {
			data["CurrentImage"] = post.Image
			data["CurrentImageURL"] = pc.media.URL(post.Image)
		}
	}
	return render(c, "posts/new_post", title, data)
}

// HandlePostView shows a single post with its comments
func (pc *PostController) HandlePostView(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}
	post, err := pc.repos.Post.GetByIDAndAuthor(id, c.Params("username"))
	if err != nil {
		return notFoundOr(err)
	}

	comments, err := pc.repos.Comment.ListByPost(post.ID)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	data, err := profileData(c, pc.repos, &post.Author)
	if err != nil {
		return err
	}
	data["Post"] = viewmodel.NewPostCard(*post, pc.media)
	data["Comments"] = comments
	data["CommentForm"] = &forms.CommentForm{Errors: forms.FieldErrors{}}
	data["CanEdit"] = usercontext.GetUserID(c) == post.AuthorID

	return render(c, "posts/post", utils.Truncatewords(post.Text, 6), data)
}

// HandleAddComment stores a comment on the post and returns to it
func (pc *PostController) HandleAddComment(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}
	username := c.Params("username")
	post, err := pc.repos.Post.GetByIDAndAuthor(id, username)
	if err != nil {
		return notFoundOr(err)
	}

	form := forms.BindCommentForm(c)
	if !form.Validate() {
		return failure(c, "Comment text is required.", postURL(username, post.ID))
	}

	comment := &models.Comment{PostID: post.ID, AuthorID: usercontext.GetUserID(c)}
	form.Apply(comment)
	if err := pc.repos.Comment.Create(comment); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return c.Redirect(postURL(username, post.ID), fiber.StatusFound)
}
