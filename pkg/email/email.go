package email

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"kazanion/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Config 邮件配置
type Config struct {
	Host     string // SMTP服务器地址
	Port     int    // SMTP服务器端口，使用隐式TLS
	Username string
	Password string
	From     string
	FromName string
}

// NotificationData 通知邮件模板数据
type NotificationData struct {
	To          string
	UserName    string
	Title       string
	Message     string
	ProductName string
}

// Sender 通知邮件发送接口
type Sender interface {
	Enabled() bool
	SendNotification(data NotificationData) error
}

// Service SMTP邮件服务
type Service struct {
	config Config
	logger *logger.Logger
}

// NewService 创建邮件服务
func NewService(config Config, logger *logger.Logger) *Service {
	return &Service{config: config, logger: logger}
}

// Enabled 未配置SMTP服务器时不发送邮件
func (s *Service) Enabled() bool {
	return s.config.Host != "" && s.config.From != ""
}

// SendNotification 渲染并发送通知邮件
func (s *Service) SendNotification(data NotificationData) error {
	if data.ProductName == "" {
		data.ProductName = "Kazanion"
	}

	body, err := render("notification.html", data)
	if err != nil {
		return err
	}

	msg := buildMessage(s.config.FromName, s.config.From, data.To, data.Title, body)
	if err := s.send(data.To, msg); err != nil {
		return err
	}

	s.logger.Info("邮件已发送", "to", data.To, "subject", data.Title)
	return nil
}

// render 渲染邮件模板
func render(name string, data interface{}) (string, error) {
	buf := new(bytes.Buffer)
	if err := templates.ExecuteTemplate(buf, name, data); err != nil {
		return "", fmt.Errorf("执行邮件模板失败: %w", err)
	}
	return buf.String(), nil
}

// buildMessage 组装邮件头和正文
func buildMessage(fromName, from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", fromName, from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// send 通过TLS连接SMTP服务器发送
func (s *Service) send(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("创建TLS连接失败: %w", err)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("创建SMTP客户端失败: %w", err)
	}
	defer client.Close()

	if s.config.Username != "" {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP认证失败: %w", err)
		}
	}

	if err := client.Mail(s.config.From); err != nil {
		return fmt.Errorf("设置发件人失败: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("设置收件人失败: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("准备发送数据失败: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("写入邮件内容失败: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("关闭数据写入失败: %w", err)
	}
	return client.Quit()
}
