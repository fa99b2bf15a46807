package genai

import "fmt"

// MessageCount is the number of drafts requested per generation.
const MessageCount = 4

// GreetingPlaceholder opens every message; the sender substitutes the recipient's name.
const GreetingPlaceholder = "Chào {full_name},"

// messageFieldDescription documents the single field of the output schema.
const messageFieldDescription = `Toàn bộ nội dung tin nhắn Zalo hoàn chỉnh, bắt đầu bằng "` + GreetingPlaceholder + `".`

const promptTemplate = `Dựa trên chân dung khách hàng sau: "%[1]s"
Và đây là sản phẩm/giải pháp tôi đang cung cấp: "%[2]s"

Hãy tạo ra %[3]d thông điệp marketing khác nhau để gửi hàng loạt qua Zalo.
Mỗi thông điệp phải tuân thủ nghiêm ngặt cấu trúc sau:
1. Chào hỏi: Bắt đầu bằng "%[4]s"
2. Nỗi đau: Xác định và đề cập đến một vấn đề hoặc thách thức lớn mà khách hàng này có thể đang đối mặt.
3. Giải pháp: Giới thiệu một cách thuyết phục giải pháp của bạn ("%[2]s") như là câu trả lời cho vấn đề của họ.
4. Kêu gọi hành động (CTA): Mời họ tham gia một nhóm Zalo, kết bạn, hoặc yêu cầu thêm thông tin.

Ví dụ mẫu: "Chào {full_name}, là một chủ doanh nghiệp, anh/chị có đang gặp khó khăn trong việc quản lý đội ngũ nhân sự không? Em có một bộ quy trình tinh gọn đã giúp hơn 50 doanh nghiệp tự động hoá vận hành và tăng hiệu suất 200%%. Kết bạn Zalo với em để nhận tài liệu miễn phí nhé!"

Yêu cầu trả về kết quả dưới dạng một mảng JSON hợp lệ theo schema đã cung cấp. Mỗi phần tử là một đối tượng có duy nhất trường "message". Không thêm bất kỳ văn bản nào khác ngoài mảng JSON.`

// BuildPrompt embeds persona and offer verbatim into the generation instruction.
func BuildPrompt(persona, offer string) string {
	return fmt.Sprintf(promptTemplate, persona, offer, MessageCount, GreetingPlaceholder)
}
