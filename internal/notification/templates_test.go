package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() TemplateData {
	return TemplateData{
		ClientName:      "João",
		ServiceName:     "Corte",
		BarberName:      "Ana",
		Date:            "10/09/2026",
		Time:            "14:00",
		BusinessName:    "Barbearia do Zé",
		BusinessAddress: "Rua das Tesouras, 10",
		BusinessPhone:   "11 5555-0000",
	}
}

func TestRender_AllTypes(t *testing.T) {
	for _, typ := range []Type{
		TypeConfirmation, TypeReminder24h, TypeReminder2h,
		TypeCancellation, TypeReschedule,
	} {
		subject, body, err := Render(typ, sampleData())
		require.NoError(t, err, string(typ))

		assert.Contains(t, subject, "Barbearia do Zé")
		assert.Contains(t, body, "Olá João,")
		assert.Contains(t, body, "- Serviço: Corte")
		assert.Contains(t, body, "- Data: 10/09/2026")
		assert.Contains(t, body, "- Horário: 14:00")
		assert.Contains(t, body, "- Profissional: Ana")
		assert.Contains(t, body, "- Local: Rua das Tesouras, 10")
		assert.True(t, strings.HasSuffix(body, "Telefone: 11 5555-0000"))
	}
}

func TestRender_Subjects(t *testing.T) {
	cases := map[Type]string{
		TypeConfirmation: "Agendamento Confirmado",
		TypeReminder24h:  "Agendamento Amanhã",
		TypeReminder2h:   "Agendamento em 2 horas",
		TypeCancellation: "Agendamento Cancelado",
		TypeReschedule:   "Agendamento Reagendado",
	}

	for typ, want := range cases {
		subject, _, err := Render(typ, sampleData())
		require.NoError(t, err)
		assert.Contains(t, subject, want)
	}
}

// A dica de gerenciamento só aparece onde o cliente ainda pode agir.
func TestRender_ManageHint(t *testing.T) {
	const hint = "Para cancelar ou reagendar"

	for typ, want := range map[Type]bool{
		TypeConfirmation: true,
		TypeReschedule:   true,
		TypeReminder24h:  false,
		TypeReminder2h:   false,
		TypeCancellation: false,
	} {
		_, body, err := Render(typ, sampleData())
		require.NoError(t, err)
		assert.Equal(t, want, strings.Contains(body, hint), string(typ))
	}
}

func TestRender_OptionalFields(t *testing.T) {
	d := sampleData()
	d.BusinessAddress = ""
	d.BusinessPhone = ""

	_, body, err := Render(TypeConfirmation, d)
	require.NoError(t, err)
	assert.NotContains(t, body, "- Local:")
	assert.NotContains(t, body, "Telefone:")
}

func TestRender_UnknownType(t *testing.T) {
	_, _, err := Render(Type("pombo-correio"), sampleData())
	require.Error(t, err)
}

func TestTypeIsValid(t *testing.T) {
	assert.True(t, TypeConfirmation.IsValid())
	assert.True(t, TypeReminder2h.IsValid())
	assert.False(t, Type("sms_marketing").IsValid())
}
