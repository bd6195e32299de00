// Package vcardio moves birthday data across standard contact and
// calendar formats: vCard in, iCalendar out.
package vcardio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-vcard"

	"BirthdayKeeper/internal/cli/model"
)

// Leap-year fallback for year-less BDAY values like --02-29.
const defaultLeapYear = 2000

// parseBDAY handles the vCard date forms seen in the wild. The second
// return value reports whether a real year was present.
func parseBDAY(value string) (time.Time, bool, error) {
	for _, layout := range []string{"2006-01-02", "20060102", time.RFC3339, "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true, nil
		}
	}
	for _, layout := range []string{"--01-02", "--0102"} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(defaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unsupported BDAY value: %q", value)
}

// ImportContacts reads a vCard stream and returns one birthday record
// candidate per card carrying a BDAY. Cards without a birthday or with
// an unparseable one are skipped, so a contact dump can be fed in
// unfiltered. The returned records carry only user-settable fields;
// ids and sync metadata are assigned by the local store on insert.
func ImportContacts(r io.Reader) ([]model.Birthday, error) {
	dec := vcard.NewDecoder(r)
	var records []model.Birthday
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, fmt.Errorf("decode vcard: %w", err)
		}

		bday := card.Get(vcard.FieldBirthday)
		if bday == nil || bday.Value == "" {
			continue
		}
		birthDate, _, err := parseBDAY(bday.Value)
		if err != nil {
			continue
		}

		// Name strategy: FN (formatted) over N (structured).
		name := ""
		if fn := card.Get(vcard.FieldFormattedName); fn != nil {
			name = fn.Value
		} else if n := card.Get(vcard.FieldName); n != nil {
			name = n.Value
		}
		if name == "" {
			continue
		}

		b := model.Birthday{
			Name:  name,
			Date:  birthDate.Format(model.DateLayout),
			Group: model.GroupOther,
		}
		if uid := card.Get(vcard.FieldUID); uid != nil {
			b.LinkedContactID = uid.Value
		}
		if tel := card.Get(vcard.FieldTelephone); tel != nil {
			b.ContactPhoneNumber = tel.Value
		}
		records = append(records, b)
	}
	return records, nil
}
