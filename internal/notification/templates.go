package notification

import (
	"fmt"
	"strings"
)

// TemplateData carrega apenas o que os templates precisam; nenhuma
// entidade viva atravessa esta fronteira.
type TemplateData struct {
	ClientName  string
	ServiceName string
	BarberName  string
	Date        string
	Time        string

	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
}

type template struct {
	subject func(d TemplateData) string
	intro   func(d TemplateData) string
	// inclui a dica de cancelamento/reagendamento no rodapé
	withManageHint bool
}

var templates = map[Type]template{
	TypeConfirmation: {
		subject:        func(d TemplateData) string { return d.BusinessName + " - Agendamento Confirmado" },
		intro:          func(d TemplateData) string { return "Seu agendamento foi confirmado!\n\nDetalhes:\n" },
		withManageHint: true,
	},
	TypeReminder24h: {
		subject: func(d TemplateData) string { return d.BusinessName + " - Lembrete: Agendamento Amanhã" },
		intro:   func(d TemplateData) string { return "Lembrete: seu agendamento é amanhã!\n\nDetalhes:\n" },
	},
	TypeReminder2h: {
		subject: func(d TemplateData) string { return d.BusinessName + " - Lembrete: Agendamento em 2 horas" },
		intro:   func(d TemplateData) string { return "Lembrete: seu agendamento é em 2 horas!\n\nDetalhes:\n" },
	},
	TypeCancellation: {
		subject: func(d TemplateData) string { return d.BusinessName + " - Agendamento Cancelado" },
		intro: func(d TemplateData) string {
			return "Seu agendamento foi cancelado.\n\nDetalhes do agendamento cancelado:\n"
		},
	},
	TypeReschedule: {
		subject:        func(d TemplateData) string { return d.BusinessName + " - Agendamento Reagendado" },
		intro:          func(d TemplateData) string { return "Seu agendamento foi reagendado!\n\nNovos detalhes:\n" },
		withManageHint: true,
	},
}

// Render produz assunto e corpo para o tipo. Tipo desconhecido é erro
// de programação, não de negócio.
func Render(t Type, d TemplateData) (subject, body string, err error) {
	tpl, ok := templates[t]
	if !ok {
		return "", "", fmt.Errorf("unknown notification type: %s", t)
	}

	var sb strings.Builder
	sb.WriteString("Olá " + d.ClientName + ",\n\n")
	sb.WriteString(tpl.intro(d))

	sb.WriteString("- Serviço: " + d.ServiceName + "\n")
	sb.WriteString("- Data: " + d.Date + "\n")
	sb.WriteString("- Horário: " + d.Time + "\n")
	sb.WriteString("- Profissional: " + d.BarberName + "\n")

	if d.BusinessAddress != "" {
		sb.WriteString("- Local: " + d.BusinessAddress + "\n")
	}

	sb.WriteString("\n")

	if tpl.withManageHint {
		sb.WriteString("Para cancelar ou reagendar, acesse o link enviado na confirmação.\n\n")
	}

	sb.WriteString("Atenciosamente,\n")
	sb.WriteString(d.BusinessName)

	if d.BusinessPhone != "" {
		sb.WriteString("\nTelefone: " + d.BusinessPhone)
	}

	return tpl.subject(d), sb.String(), nil
}
