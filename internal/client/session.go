package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homeboard-backend/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// View is one of the board's three screens. There is no back-stack; the
// current view is the whole navigation state.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewAdd
)

// Session holds the fetched listings and the current view. Listings are
// fetched once on Load; detail lookups resolve against the in-memory slice
// without re-fetching.
type Session struct {
	api      *Client
	homes    []domain.Home
	view     View
	detailID string
}

// NewSession builds a session over the given API client.
func NewSession(api *Client) *Session {
	return &Session{api: api, view: ViewList}
}

// Load fetches all listings once. Any failure surfaces as the single generic
// message the board shows for fetch errors.
func (s *Session) Load(ctx context.Context) error {
	homes, err := s.api.GetHomes(ctx)
	if err != nil {
		return errors.New("Failed to fetch homes. Is the backend server running?")
	}
	s.homes = homes
	return nil
}

// Homes returns the in-memory listings.
func (s *Session) Homes() []domain.Home {
	return s.homes
}

// View returns the current view.
func (s *Session) View() View {
	return s.view
}

// ShowList switches to the list view.
func (s *Session) ShowList() {
	s.view = ViewList
	s.detailID = ""
}

// ShowDetail switches to the detail view for the given id. Resolution is
// deferred to RenderDetail so a listing deleted elsewhere renders a
// not-found message instead of erroring.
func (s *Session) ShowDetail(id string) {
	s.view = ViewDetail
	s.detailID = id
}

// ShowAdd switches to the add-form view.
func (s *Session) ShowAdd() {
	s.view = ViewAdd
}

// SubmitAdd uploads the files, then submits the composed record: two
// sequential round trips. On success the new listing goes to the front of the
// in-memory list and the session returns to the list view.
func (s *Session) SubmitAdd(ctx context.Context, in NewHome, files []UploadFile) (*domain.Home, error) {
	if len(files) > 0 {
		refs, err := s.api.UploadFiles(ctx, files)
		if err != nil {
			return nil, errors.New("Failed to add the new home. Please try again.")
		}
		in.MediaFiles = refs
	}
	home, err := s.api.AddHome(ctx, in)
	if err != nil {
		return nil, errors.New("Failed to add the new home. Please try again.")
	}
	s.homes = append([]domain.Home{*home}, s.homes...)
	s.ShowList()
	return home, nil
}

// Delete removes the listing on the server and from the in-memory list.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteHome(ctx, id); err != nil {
		return err
	}
	kept := s.homes[:0]
	for _, h := range s.homes {
		if h.HomeID.String() != id {
			kept = append(kept, h)
		}
	}
	s.homes = kept
	return nil
}

// RenderList renders the list view as text.
func (s *Session) RenderList() string {
	if len(s.homes) == 0 {
		return "No homes on the board yet.\n"
	}
	var b strings.Builder
	for _, h := range s.homes {
		fmt.Fprintf(&b, "%s  %s — %s (%s)\n", h.HomeID, h.Title, FormatPrice(h.Price), h.Size)
	}
	return b.String()
}

// RenderDetail renders the detail view for the current id, looking it up in
// the already-fetched list.
func (s *Session) RenderDetail() string {
	var home *domain.Home
	for i := range s.homes {
		if s.homes[i].HomeID.String() == s.detailID {
			home = &s.homes[i]
			break
		}
	}
	if home == nil {
		return "Home not found. It might have been deleted.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", home.Title, home.Address)
	fmt.Fprintf(&b, "Price: %s\n", FormatPrice(home.Price))
	if home.Deposit != nil {
		fmt.Fprintf(&b, "Deposit: %s\n", FormatPrice(*home.Deposit))
	}
	fmt.Fprintf(&b, "Size: %s\n", home.Size)
	if home.ListingURL != nil {
		fmt.Fprintf(&b, "Listing: %s\n", *home.ListingURL)
	}
	if home.GoogleMapsURL != nil {
		fmt.Fprintf(&b, "Map: %s\n", *home.GoogleMapsURL)
	}
	if home.Notes != nil {
		fmt.Fprintf(&b, "Notes: %s\n", *home.Notes)
	}
	if len(home.MediaFiles) == 0 {
		b.WriteString("No media available\n")
	} else {
		for _, f := range home.MediaFiles {
			fmt.Fprintf(&b, "Media: %s (%s) %s\n", f.FileName, f.MimeType, s.api.FileURL(f.DriveID))
		}
	}
	return b.String()
}

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a price as grouped USD, or N/A when absent.
func FormatPrice(price float64) string {
	if price == 0 {
		return "N/A"
	}
	return pricePrinter.Sprintf("$%.2f", price)
}
