package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/rolodex/internal/formatter"
	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/shared"
)

// ContactsList prints every contact, optionally filtered by name.
func (r *Runner) ContactsList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	s, closeFn, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	contacts := s.Search(cmd.String("search"))
	r.logger.Debug("listing contacts", "count", len(contacts), "format", format)

	data, err := formatter.Export(contacts, format)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// ContactsShow prints a single contact.
func (r *Runner) ContactsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	s, closeFn, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	c, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", shared.ErrContactNotFound, id)
	}

	if cmd.Bool("json") {
		return r.writeJSON(c, true)
	}
	r.writeContact(c)
	return nil
}

// ContactsAdd creates a contact from flags.
func (r *Runner) ContactsAdd(ctx context.Context, cmd *cli.Command) error {
	fields := models.ContactFields{
		Name:    cmd.String("name"),
		Email:   cmd.String("email"),
		Phone:   cmd.String("phone"),
		Website: models.OptionalString(cmd.String("website")),
		Company: models.OptionalString(cmd.String("company")),
		Address: models.OptionalString(cmd.String("address")),
	}
	if err := fields.Validate(); err != nil {
		return err
	}

	s, closeFn, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	c, err := s.Add(ctx, fields)
	if err != nil {
		return err
	}

	r.logger.Info("contact added", "id", c.ID, "name", c.Name)
	r.writePlain("✓ Added %s (ID: %d)\n", c.Name, c.ID)
	return nil
}

// ContactsUpdate patches the flags that were set on the command line.
func (r *Runner) ContactsUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	var patch models.ContactPatch
	for name, field := range map[string]**string{
		"name":    &patch.Name,
		"email":   &patch.Email,
		"phone":   &patch.Phone,
		"website": &patch.Website,
		"company": &patch.Company,
		"address": &patch.Address,
	} {
		if cmd.IsSet(name) {
			*field = models.StringPtr(cmd.String(name))
		}
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", shared.ErrMissingArgument)
	}

	s, closeFn, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if _, ok := s.Get(id); !ok {
		return fmt.Errorf("%w: %d", shared.ErrContactNotFound, id)
	}

	if err := s.Update(ctx, id, patch); err != nil {
		return err
	}

	c, _ := s.Get(id)
	r.logger.Info("contact updated", "id", id)
	r.writePlain("✓ Updated %s\n", c.Name)
	return nil
}

// ContactsDelete removes a contact after confirmation.
func (r *Runner) ContactsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	s, closeFn, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	c, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", shared.ErrContactNotFound, id)
	}

	if !cmd.Bool("yes") && !r.confirm(fmt.Sprintf("Delete %s?", c.Name)) {
		r.writePlain("Cancelled\n")
		return nil
	}

	if err := s.Delete(ctx, id); err != nil {
		return err
	}

	r.logger.Info("contact deleted", "id", id)
	r.writePlain("✓ Deleted %s\n", c.Name)
	return nil
}

// ContactsOpen opens a contact's website in the system browser.
func (r *Runner) ContactsOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	s, closeFn, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	c, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", shared.ErrContactNotFound, id)
	}
	if c.Website == nil {
		return fmt.Errorf("%w: %s has no website", shared.ErrInvalidInput, c.Name)
	}

	u, err := shared.WebsiteURL(*c.Website)
	if err != nil {
		return err
	}

	r.logger.Info("opening website", "url", u)
	return r.openURL(u)
}

func (r *Runner) writeContact(c models.Contact) {
	r.writePlainHeader(c.Name)
	r.writePlain("ID:      %d\n", c.ID)
	r.writePlain("Email:   %s\n", c.Email)
	r.writePlain("Phone:   %s\n", c.Phone)
	r.writePlain("Website: %s\n", models.Deref(c.Website, "N/A"))
	r.writePlain("Address: %s\n", models.Deref(c.Address, "N/A"))
	r.writePlain("Company: %s\n", models.Deref(c.Company, "No Company"))
}
