package forms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
)

func TestProfileToForm(t *testing.T) {
	p := &domain.Profile{DisplayName: "Steven", MainEmail: "s@example.com", TeeShirtSize: "L_M"}
	f, err := ProfileToForm(p)
	require.NoError(t, err)
	require.Equal(t, "Steven", f.DisplayName)
	require.Equal(t, "L_M", f.TeeShirtSize)
}

func TestProfileToForm_FailsClosedOnUnknownSize(t *testing.T) {
	p := &domain.Profile{DisplayName: "Steven", TeeShirtSize: "GIGANTIC"}
	_, err := ProfileToForm(p)
	require.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestProfileMiniForm_Validate(t *testing.T) {
	require.Empty(t, ProfileMiniForm{DisplayName: "Steven"}.Validate())
	require.Empty(t, ProfileMiniForm{TeeShirtSize: "XL_W"}.Validate())
	require.NotEmpty(t, ProfileMiniForm{TeeShirtSize: "HUGE"}.Validate())
}
