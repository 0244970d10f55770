package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AliKaner/mc-case/internal/client/models"
	"github.com/AliKaner/mc-case/internal/client/query"
	"github.com/google/uuid"
)

var errUsage = errors.New("usage")

// newID is a test seam for generating identities of new users.
var newID = uuid.NewString

func requireID(args []string, cmd string) (models.ID, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return models.ID{}, fmt.Errorf("%w: %s <id>", errUsage, cmd)
	}
	return models.ParseID(args[0]), nil
}

// List parses "[page] [limit] [search...]" and prints the matching page.
// Leading numeric arguments are page and limit; the rest is the search term.
func (a *App) List(ctx context.Context, args []string) error {
	a.view.page = query.DefaultPage
	a.view.limit = defaultView(a.config.DefaultPageSize).limit
	a.view.search = ""

	rest := args
	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil {
			a.view.page = n
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil {
			a.view.limit = n
			rest = rest[1:]
		}
	}
	a.view.search = strings.Join(rest, " ")

	page, err := a.users.GetUsers(ctx, query.Options{
		Search: a.view.search,
		Sort:   a.view.sort,
		Order:  a.view.order,
		Page:   a.view.page,
		Limit:  a.view.limit,
	})
	if err != nil {
		return err
	}

	printPage(page)
	return nil
}

// Sort changes the order used by later list commands. It accepts
// "name-desc" as well as "name desc".
func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: sort <field>[-desc] [asc|desc]", errUsage)
	}
	field, order := query.ParseSortKey(args[0])
	if len(args) > 1 {
		switch o := strings.ToLower(args[1]); o {
		case query.OrderAsc, query.OrderDesc:
			order = o
		default:
			return fmt.Errorf("%w: order must be %s or %s", errUsage, query.OrderAsc, query.OrderDesc)
		}
	}
	if _, ok := (models.Record{}).Field(field); !ok {
		return fmt.Errorf("unknown sort field %q", field)
	}

	a.view.sort, a.view.order = field, order
	printlnFn(fmt.Sprintf("Sorting by %s %s", field, order))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := requireID(args, "show")
	if err != nil {
		return err
	}
	u, err := a.users.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	printUser(u)
	return nil
}

// Add prompts for the form fields, validates them and creates the user.
// An empty id gets a generated one.
func (a *App) Add(ctx context.Context) error {
	form, err := a.readForm(models.UserForm{}, true)
	if err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	id := models.ParseID(form.ID)
	if id.IsZero() {
		id = models.StringID(newID())
	}

	u, err := a.users.CreateUser(ctx, form.ToRecord(id))
	if err != nil {
		return err
	}
	printlnFn("User created:", u.ID.String())
	return nil
}

// Edit shows the current values as defaults; an empty answer keeps a field.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := requireID(args, "edit")
	if err != nil {
		return err
	}
	current, err := a.users.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	form, err := a.readForm(models.FormFromRecord(current), false)
	if err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	u, err := a.users.UpdateUser(ctx, id, form.ToPatch())
	if err != nil {
		return err
	}
	printlnFn("User updated:", u.ID.String())
	printUser(u)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := requireID(args, "delete")
	if err != nil {
		return err
	}
	res, err := a.users.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	printlnFn(res.Message)
	return nil
}

func (a *App) Deleted(ctx context.Context) error {
	ids := a.users.Deleted(ctx)
	if len(ids) == 0 {
		printlnFn("No deleted users")
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	printlnFn("Deleted users:", strings.Join(keys, ", "))
	return nil
}

func (a *App) Restore(ctx context.Context) error {
	if err := a.users.RestoreAll(ctx); err != nil {
		return err
	}
	printlnFn("Deleted users restored")
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	a.users.ClearCache(ctx)
	printlnFn("Cache cleared")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	st := a.users.Status(ctx)
	printlnFn("Storage available:", st.StorageAvailable)
	if st.Cached {
		printlnFn(fmt.Sprintf("Cached users: %d (since %s)", st.CachedUsers, st.CachedAt.Format("2006-01-02 15:04:05")))
	} else {
		printlnFn("Cached users: none")
	}
	printlnFn("Deleted users:", st.Tombstones)
	if len(st.StoredKeys) > 0 {
		printlnFn("Stored keys:", strings.Join(st.StoredKeys, ", "))
	} else {
		printlnFn("Stored keys: none")
	}
	return nil
}

func (a *App) readForm(current models.UserForm, withID bool) (models.UserForm, error) {
	form := current
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &form.Name},
		{"Username", &form.Username},
		{"Email", &form.Email},
		{"Phone", &form.Phone},
		{"Company name", &form.CompanyName},
	}
	if withID {
		id, err := GetSimpleText(a.reader, "Id (empty to generate)", a.prompts)
		if err != nil {
			return models.UserForm{}, err
		}
		form.ID = id
	}
	for _, f := range fields {
		v, err := GetTextWithDefault(a.reader, f.prompt, *f.dst, a.prompts)
		if err != nil {
			return models.UserForm{}, err
		}
		*f.dst = v
	}
	return form, nil
}

func printPage(p query.Page) {
	if len(p.Users) == 0 {
		printlnFn("No users found")
	}
	for _, u := range p.Users {
		printlnFn(fmt.Sprintf("%-8s %-24s %-16s %-28s %s", u.ID.String(), u.Name, u.Username, u.Email, u.Company.Name))
	}
	printlnFn(fmt.Sprintf("Page %d/%d, %d users", p.CurrentPage, p.TotalPages, p.TotalUsers))
}

func printUser(u models.Record) {
	printlnFn("Id:      ", u.ID.String())
	printlnFn("Name:    ", u.Name)
	printlnFn("Username:", u.Username)
	printlnFn("Email:   ", u.Email)
	printlnFn("Phone:   ", u.Phone)
	if u.Website != "" {
		printlnFn("Website: ", u.Website)
	}
	printlnFn("Company: ", u.Company.Name)
	if u.Address != nil && u.Address.City != "" {
		printlnFn("City:    ", u.Address.City)
	}
}
