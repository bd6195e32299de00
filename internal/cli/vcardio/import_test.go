package vcardio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"BirthdayKeeper/internal/cli/model"
)

const sampleVCF = "BEGIN:VCARD\r\n" +
	"VERSION:4.0\r\n" +
	"UID:uid-alice\r\n" +
	"FN:Alice Smith\r\n" +
	"N:Smith;Alice;;;\r\n" +
	"TEL:+1-555-0100\r\n" +
	"BDAY:1990-05-17\r\n" +
	"END:VCARD\r\n" +
	"BEGIN:VCARD\r\n" +
	"VERSION:4.0\r\n" +
	"FN:No Birthday\r\n" +
	"END:VCARD\r\n" +
	"BEGIN:VCARD\r\n" +
	"VERSION:4.0\r\n" +
	"FN:Year Unknown\r\n" +
	"BDAY:--02-29\r\n" +
	"END:VCARD\r\n"

func TestImportContacts(t *testing.T) {
	records, err := ImportContacts(strings.NewReader(sampleVCF))
	assert.NoError(t, err)
	if !assert.Len(t, records, 2) {
		return
	}

	alice := records[0]
	assert.Equal(t, "Alice Smith", alice.Name)
	assert.Equal(t, "1990-05-17", alice.Date)
	assert.Equal(t, "uid-alice", alice.LinkedContactID)
	assert.Equal(t, "+1-555-0100", alice.ContactPhoneNumber)
	assert.Equal(t, model.GroupOther, alice.Group)
	// Sync metadata is the store's job, not the importer's.
	assert.Zero(t, alice.ID)
	assert.Empty(t, alice.SyncID)

	// Year-less BDAY falls back to a leap year so Feb 29 survives.
	assert.Equal(t, "Year Unknown", records[1].Name)
	assert.Equal(t, "2000-02-29", records[1].Date)
}

func TestImportContacts_EmptyStream(t *testing.T) {
	records, err := ImportContacts(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseBDAY(t *testing.T) {
	t.Run("with year", func(t *testing.T) {
		for _, in := range []string{"1990-05-17", "19900517"} {
			got, hasYear, err := parseBDAY(in)
			assert.NoError(t, err, in)
			assert.True(t, hasYear, in)
			assert.Equal(t, 1990, got.Year(), in)
		}
	})

	t.Run("year-less", func(t *testing.T) {
		for _, in := range []string{"--05-17", "--0517"} {
			got, hasYear, err := parseBDAY(in)
			assert.NoError(t, err, in)
			assert.False(t, hasYear, in)
			assert.Equal(t, defaultLeapYear, got.Year(), in)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		_, _, err := parseBDAY("sometime in May")
		assert.Error(t, err)
	})
}
