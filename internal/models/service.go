package models

// Service is a read-only catalog entry.
type Service struct {
	ID          int64  `json:"id"`
	Name        string `json:"nome"`
	Description string `json:"descricao,omitempty"`
}

// DefaultServices is the starter catalog written on first boot.
func DefaultServices() []Service {
	return []Service{
		{Name: "Corte de cabelo", Description: "Corte feminino ou masculino com lavagem e secagem."},
		{Name: "Coloração", Description: "Coloração completa ou retoque de raiz."},
		{Name: "Madeixas", Description: "Madeixas com papel ou técnica balayage."},
		{Name: "Manicure", Description: "Tratamento de unhas das mãos com verniz."},
		{Name: "Pedicure", Description: "Tratamento de unhas dos pés com verniz."},
		{Name: "Maquilhagem", Description: "Maquilhagem social ou para eventos."},
		{Name: "Depilação", Description: "Depilação a cera de pernas, axilas ou buço."},
		{Name: "Limpeza de pele", Description: "Limpeza facial profunda com hidratação."},
	}
}
