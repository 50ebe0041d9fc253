package authdto

// UserRegisterInput đầu vào đăng ký người dùng.
type UserRegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strong_password"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female preferNotToSay"`
	Location  string `json:"location"`
	Role      string `json:"role" validate:"omitempty,oneof=buyer seller admin"`
}

// UserLoginInput đầu vào đăng nhập người dùng.
type UserLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserChangeInfoInput đầu vào thay đổi thông tin người dùng.
type UserChangeInfoInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female preferNotToSay"`
	Location  string `json:"location"`
}

// BlockUserInput đầu vào khóa người dùng (admin).
type BlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
	Note  string `json:"note" validate:"required"`
}

// UnBlockUserInput đầu vào mở khóa người dùng (admin).
type UnBlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
}
