// Package catalog declares the end-to-end scenarios of the blog application.
package catalog

import (
	"sort"

	"github.com/blogapp/e2e/internal/models"
	"github.com/blogapp/e2e/internal/scenario"
)

// Scenario groups
const (
	GroupBlogApp  = "Blog app"
	GroupLogin    = "Login"
	GroupLoggedIn = "When logged in"
)

// UI texts the scenarios wait for
const (
	AppTitle       = "Blogs"
	LoginPrompt    = "Log in to application"
	WrongLogin     = "Wrong Credentials"
	BlogCreated    = "A new blog was created!"
	BlogDeleted    = "A Blog was deleted successfully!"
	blogListItem   = ".blog"
	buttonLogin    = "login"
	buttonNewBlog  = "New Blog"
	buttonSave     = "Save"
	buttonView     = "View"
	buttonHide     = "Hide"
	buttonLike     = "Like"
	buttonDelete   = "Delete"
	unknownAccount = "Otro"
)

// Fixture users
var (
	Creator = models.User{Name: "prueba", Username: "Prueba", Password: "prueba"}
	Visitor = models.User{Name: "facu", Username: "Facu", Password: "facu"}
)

// Blogs created through the form
var (
	FirstBlog  = models.BlogForm{Title: "A new title", Author: "A new author", URL: "A new url"}
	SecondBlog = models.BlogForm{Title: "A second title", Author: "A second author", URL: "A second url"}
)

// Scenarios returns every scenario in execution order
func Scenarios() []scenario.Scenario {
	creator := Creator
	return []scenario.Scenario{
		{
			Group: GroupBlogApp,
			Name:  "login form is shown",
			Users: []models.User{Creator},
			Steps: []scenario.Step{
				scenario.ExpectVisible(scenario.Text(AppTitle)),
				scenario.ExpectVisible(scenario.Text(LoginPrompt)),
				scenario.ExpectCount(scenario.CSS(blogListItem), 0),
			},
		},
		{
			Group: GroupLogin,
			Name:  "succeeds with correct credentials",
			Users: []models.User{Creator},
			Steps: []scenario.Step{
				scenario.Click(scenario.Button(buttonLogin)),
				scenario.LogIn(Creator),
				scenario.ExpectVisible(scenario.Text(Creator.LoggedInBanner())),
			},
		},
		{
			Group: GroupLogin,
			Name:  "fails with wrong credentials",
			Users: []models.User{Creator},
			Steps: []scenario.Step{
				scenario.Click(scenario.Button(buttonLogin)),
				scenario.SubmitCredentials(unknownAccount, Creator.Password),
				scenario.ExpectVisible(scenario.Text(WrongLogin)),
				scenario.ExpectHidden(scenario.Text(Creator.LoggedInBanner())),
			},
		},
		{
			Group:   GroupLoggedIn,
			Name:    "a new blog can be created",
			Users:   []models.User{Creator},
			LoginAs: &creator,
			Steps: []scenario.Step{
				CreateBlog(FirstBlog),
				scenario.ExpectVisible(scenario.Text(BlogCreated)),
				scenario.ExpectCount(scenario.Text(BlogCreated), 1),
				scenario.ExpectHidden(scenario.Text(BlogCreated)),
			},
		},
		{
			Group:   GroupLoggedIn,
			Name:    "a blog can be liked",
			Users:   []models.User{Creator},
			LoginAs: &creator,
			Steps: []scenario.Step{
				CreateBlog(FirstBlog),
				scenario.Click(scenario.Button(buttonView)),
				scenario.Click(scenario.Button(buttonLike)),
				scenario.ExpectVisible(scenario.Text(models.LikesLabel(1))),
				// Reading again without another click must not change the count.
				scenario.ExpectVisible(scenario.Text(models.LikesLabel(1))),
			},
		},
		{
			Group:   GroupLoggedIn,
			Name:    "a blog can be deleted by creator",
			Users:   []models.User{Creator},
			LoginAs: &creator,
			Steps: []scenario.Step{
				scenario.AcceptDialog(),
				CreateBlog(FirstBlog),
				scenario.Click(scenario.Button(buttonView)),
				scenario.Click(scenario.Button(buttonDelete)),
				scenario.ExpectVisible(scenario.Text(BlogDeleted)),
				scenario.ExpectCount(scenario.CSS(blogListItem), 0),
			},
		},
		{
			Group:   GroupLoggedIn,
			Name:    "a blog can not be deleted by not creator",
			Users:   []models.User{Creator, Visitor},
			LoginAs: &creator,
			Steps: []scenario.Step{
				CreateBlog(FirstBlog),
				scenario.ExpectVisible(scenario.Text(BlogCreated)),
				scenario.LogOut(),
				scenario.LogIn(Visitor),
				scenario.ExpectVisible(scenario.Text(Visitor.LoggedInBanner())),
				scenario.Click(scenario.Button(buttonView)),
				scenario.ExpectHidden(scenario.Button(buttonDelete)),
			},
		},
		orderedByLikes(),
	}
}

// orderedByLikes likes each blog a different number of times and checks that
// the list is sorted by descending likes
func orderedByLikes() scenario.Scenario {
	creator := Creator
	posts := []models.Post{
		{Title: FirstBlog.Title, Author: FirstBlog.Author, URL: FirstBlog.URL, Likes: 1, Creator: Creator.Username},
		{Title: SecondBlog.Title, Author: SecondBlog.Author, URL: SecondBlog.URL, Likes: 2, Creator: Creator.Username},
	}

	steps := []scenario.Step{
		CreateBlog(FirstBlog),
		scenario.ExpectVisible(scenario.Text(BlogCreated)),
		scenario.ExpectHidden(scenario.Text(BlogCreated)),
		CreateBlog(SecondBlog),
		scenario.ExpectVisible(scenario.Text(BlogCreated)),
		scenario.ExpectVisible(scenario.Text(SecondBlog.Title)),
	}
	for _, post := range posts {
		steps = append(steps, LikeBlog(post.Title, post.Likes))
	}

	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Likes > posts[j].Likes })
	for i, post := range posts {
		steps = append(steps, scenario.ExpectText(scenario.CSS(blogListItem).Nth(i), post.Title))
	}

	return scenario.Scenario{
		Group:   GroupLoggedIn,
		Name:    "blogs are ordered by likes",
		Users:   []models.User{Creator},
		LoginAs: &creator,
		Steps:   steps,
	}
}
