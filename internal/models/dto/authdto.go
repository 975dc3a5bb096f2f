package dto

// RegisterRequestDTO carries the registration form.
type RegisterRequestDTO struct {
	Username  string `json:"username" mapstructure:"username" validate:"required,max=64"`
	Email     string `json:"email" mapstructure:"email" validate:"required,email"`
	Password  string `json:"password" mapstructure:"password" validate:"required"`
	Password2 string `json:"password2" mapstructure:"password2" validate:"required"`
}

type LoginRequestDTO struct {
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
}

// FormDescriptorDTO lists the fields a form endpoint accepts.
type FormDescriptorDTO struct {
	Fields []string `json:"fields"`
}
