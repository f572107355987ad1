package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template 邮件模板
type Template struct {
	tmpl *template.Template
}

// NewTemplate 从 HTML 字符串创建模板
func NewTemplate(htmlContent string) (*Template, error) {
	tmpl, err := template.New("email").Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("解析邮件模板失败: %w", err)
	}
	return &Template{tmpl: tmpl}, nil
}

// Render 渲染模板
func (t *Template) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染邮件模板失败: %w", err)
	}
	return buf.String(), nil
}

// SendWithTemplate 使用模板发送邮件
func (c *Client) SendWithTemplate(to, subject string, tmpl *Template, data any) error {
	body, err := tmpl.Render(data)
	if err != nil {
		return err
	}
	return c.SendHTML(to, subject, body)
}

// ResetPasswordData 重置密码邮件参数
type ResetPasswordData struct {
	Email         string
	Token         string
	ExpireMinutes int
}

// ResetPasswordTemplate 重置密码邮件，正文为印尼语
const ResetPasswordTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #0f766e; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .token { font-family: monospace; word-break: break-all; padding: 16px; background-color: #fff; border: 2px dashed #0f766e; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Reset Password SIDIFA</h1>
        </div>
        <div class="content">
            <p>Halo {{.Email}},</p>
            <p>Kami menerima permintaan untuk mengatur ulang password akun Anda. Gunakan token berikut:</p>
            <div class="token">{{.Token}}</div>
            <p>Token berlaku selama {{.ExpireMinutes}} menit.</p>
            <p>Jika Anda tidak meminta reset password, abaikan email ini.</p>
        </div>
        <div class="footer">
            <p>Email ini dikirim otomatis, mohon tidak membalas.</p>
        </div>
    </div>
</body>
</html>`

var resetPasswordTmpl = template.Must(template.New("reset").Parse(ResetPasswordTemplate))

// SendResetPassword 发送重置密码邮件
func (c *Client) SendResetPassword(to, token string, expireMinutes int) error {
	return c.SendWithTemplate(to, "Reset Password SIDIFA", &Template{tmpl: resetPasswordTmpl}, ResetPasswordData{
		Email:         to,
		Token:         token,
		ExpireMinutes: expireMinutes,
	})
}
