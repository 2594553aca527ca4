package catalog

import (
	"context"
	"fmt"

	"github.com/blogapp/e2e/internal/models"
	"github.com/blogapp/e2e/internal/scenario"
)

// BlogItem locates the list entry of the blog titled title
func BlogItem(title string) scenario.Locator {
	return scenario.CSS(blogListItem).WithText(title)
}

// CreateBlog opens the new blog form, fills it and saves it. A form missing a
// required field yields a step that fails without touching the page.
func CreateBlog(form models.BlogForm) scenario.Step {
	name := fmt.Sprintf("create blog %q", form.Title)
	if err := form.Validate(); err != nil {
		return invalidStep{name: name, err: fmt.Errorf("invalid blog form: %w", err)}
	}
	return scenario.Group(name,
		scenario.Click(scenario.Button(buttonNewBlog)),
		scenario.Fill(scenario.TestID("title"), form.Title),
		scenario.Fill(scenario.TestID("author"), form.Author),
		scenario.Fill(scenario.TestID("url"), form.URL),
		scenario.Click(scenario.Button(buttonSave)),
	)
}

// LikeBlog expands the blog titled title, likes it times times checking the
// counter after every click, and collapses it again. Every locator is scoped
// to the blog's list entry because positions change as likes reorder the list.
func LikeBlog(title string, times int) scenario.Step {
	item := BlogItem(title)
	steps := []scenario.Step{
		scenario.Click(scenario.Button(buttonView).Within(item)),
	}
	for i := 1; i <= times; i++ {
		steps = append(steps,
			scenario.Click(scenario.Button(buttonLike).Within(item)),
			scenario.ExpectVisible(scenario.Text(models.LikesLabel(i)).Within(item)),
		)
	}
	steps = append(steps, scenario.Click(scenario.Button(buttonHide).Within(item)))

	return scenario.Group(fmt.Sprintf("like %q %d times", title, times), steps...)
}

// invalidStep always fails with err
type invalidStep struct {
	name string
	err  error
}

func (s invalidStep) Run(ctx context.Context, _ *scenario.Session) error { return s.err }

func (s invalidStep) String() string { return s.name }
