// Package content provides the intranet's static messages and notices. The
// providers are pure: they take the clock reading and the identity fields
// and return records, so the narrative flags decide what is listed.
package content

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"daydream/internal/narrative"
)

// ErrNotFound is returned when a message or notice id does not exist.
var ErrNotFound = errors.New("not found")

// Well-known message ids.
const (
	SpamMessageID     = "2"
	SecurityMessageID = "security-breach"
)

// Message is one inbox entry. Body is markdown.
type Message struct {
	ID         string
	Sender     string
	SenderDept string
	Receiver   string
	Title      string
	Date       string
	Time       string
	IsSpam     bool
	Preview    string
	Body       string
}

// Identity is the slice of narrative state the providers need.
type Identity struct {
	UserName string
	Team     string
	Rank     string
}

// IdentityOf extracts the identity from a state snapshot.
func IdentityOf(st narrative.State) Identity {
	return Identity{UserName: st.UserName, Team: st.Team, Rank: st.Rank}
}

func (id Identity) receiver() string {
	return fmt.Sprintf("%s (%s/%s)", id.UserName, id.Team, id.Rank)
}

// SpamEnding is the last line of the spam message; the visibility trigger
// watches for it.
const SpamEnding = "감사합니다."

// SpamText is the body of the spam message as plain text. The corruption
// wave retypes it rune by rune.
var SpamText = strings.Join([]string{
	"평안하십니까, 길 잃은 어린 양이여.",
	"당신이 오늘 내린 그 모든 '선택'이 정말 당신의 의지라 믿으십니까? 착각에서 깨어나십시오.",
	"이 세계의 주인은 오직 이름님 뿐입니다.",
	"세상 만물은 그분의 유희를 위해 존재합니다. 그분의 눈길이 머무는 곳에만 의미가 생겨납니다.",
	"평범함은 죄악입니다. 안온함은 버림받은 증거입니다.",
	"그분께 닿기 위해 우리는 더 특별해져야 합니다. 더 비참하게, 더 잔혹하게, 더 처절하게 발버둥 치십시오.",
	"고통만이 그분의 사랑을 증명하는 유일한 길입니다.",
	"고통만이 그분의사랑을 증명하는유일한 길입니다. 고통만이 그분 의사랑을 증명 하는유일한 길입니다.",
	"고통이만 분의 사랑을 그 증명하는 유일 길합니다. 고통만이 그분의 사랑을증명하는 유 일 한 길입니다.",
	"고통 고통 고통만 고통만이그분 의사랑 을증명하는 유 일한 길입 니다.",
	"고통만이그분의사랑을증명하는유일한 길입니다. 고통만이그분의사랑을증명하는유일한길입니다.",
	"고통만이 사랑을 그분의 사랑을 증명 하는유일한 길입니다.",
	"고통만이 사랑을 증명하는길입니다.",
	"고통만이 증명하는 길입니다.",
	"고통 만이 증명하는길입니다.",
	"고통만이길입니다.",
	"고통이길입니다.",
	"고통이길.",
}, "\n") + "\n" + strings.Repeat("고통이다. 고통이야. 고통. 고통. 고통. 고통이다.\n", 20) + SpamEnding

// RetypeText is what the corruption wave writes over SpamText. The escapes
// are literal backslash sequences, not decoded characters.
const RetypeText = `\uc6b0\ub9ac \ubaa8\ub450\ub294 \ud55c\ub0b1 \uc774\uc57c\uae30\uc5d0 \ubd88\uacfc\ud558\ub2e4 \uc704\ub300\ud558\uc2e0 \uc774\ub984\ub2d8 `

// SecurityEnding is the closing block of the security message.
const SecurityEnding = "찾았다.찾았다.찾았어.찾았다.찾았어.찾았네.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았네.찾았다.찾았다.찾았어.찾았어.찾았다.찾았다.찾았다.찾았어?찾았다.찾았다.찾았다.찾았다.찾았어.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다.찾았다."

// Messages returns the base inbox, with the security message prepended when
// showSecurity is set.
func Messages(now time.Time, id Identity, showSecurity bool) []Message {
	msgs := []Message{
		{
			ID:         "notice-edu",
			Sender:     "최지수 대리",
			SenderDept: "인재개발팀",
			Receiver:   id.receiver(),
			Title:      "[필독] 2025년 하반기 법정의무교육 미수료 안내 (마감 임박)",
			Date:       Relative(now, 0),
			Time:       "09:30",
			Preview:    "안녕하세요, 인재개발팀입니다. 귀하께서는 금일 기준 2025년 하반기...",
			Body: fmt.Sprintf(`안녕하세요, 인재개발팀입니다.

귀하께서는 금일 기준 2025년 하반기 법정의무교육(성희롱 예방, 개인정보보호, 직장 내 괴롭힘 방지) 과정을 아직 수료하지 않은 것으로 확인됩니다.

해당 교육은 법적 의무 사항으로, 미수료 시 관련 법령에 따라 과태료가 부과될 수 있으며 부서 KPI 평가(교육 이수율 부문)에 불이익이 발생할 수 있습니다.

**바쁘시더라도 금주 금요일(%s) 18:00까지 반드시 수료하여 주시기 바랍니다.**

> **수강 방법:** 인트라넷 > HR 포털 > 이러닝 센터 > 필수 과정
> **문의:** 인재개발팀 (내선 3052)

※ 이미 수료하신 경우, 시스템 반영까지 1~2시간 소요될 수 있으니 양해 부탁드립니다.`,
				FormatDate(RelativeDate(now, 1), DateShort)),
		},
		{
			ID:         "notice-parking",
			Sender:     "시설관리파트",
			SenderDept: "총무팀",
			Receiver:   id.receiver(),
			Title:      "[협조] 본관 지하 2층 주차장 바닥 물청소 및 차량 이동 주차 요청",
			Date:       Relative(now, 0),
			Time:       "08:50",
			Preview:    "임직원 여러분 안녕하십니까, 총무팀입니다. 쾌적한 주차 환경 조성을 위하여...",
			Body: fmt.Sprintf(`임직원 여러분 안녕하십니까, 총무팀입니다.

쾌적한 주차 환경 조성을 위하여 본관 주차장 전체 구역의 바닥 물청소 및 도색 보수 작업을 아래와 같이 진행할 예정입니다. 작업 기간 동안 해당 구역의 주차가 전면 통제되오니, 임직원 여러분께서는 외부 주차 타워를 이용해 주시기 바랍니다.

- **일시:** %s (금) 09:00 ~ %s (토) 18:00 (2일간)
- **대상:** 본관 주차장 전 구역 (A~F존)

**협조 사항: 금일 퇴근 시 주차장에 주차된 차량은 반드시 이동 주차 부탁드립니다.**

※ 작업 기간 중 미이동 차량에 대해서는 비닐 커버링 작업을 진행하나, 분진 발생 등에 대한 책임은 지지 않습니다.

감사합니다.`, Relative(now, 1), Relative(now, 2)),
		},
		{
			ID:         "1",
			Sender:     "김현중 대리",
			SenderDept: "경영지원",
			Receiver:   id.receiver(),
			Title:      "법인카드 사용 내역 확인 요청 (소명 필요)",
			Date:       Relative(now, -1),
			Time:       "09:15",
			Preview:    "안녕하세요, 경영지원팀 김현중 대리입니다. 법인카드 사용 내역 마감 중...",
			Body: fmt.Sprintf(`안녕하세요, %s님.

경영지원팀 김현중 대리입니다.

법인카드 사용 내역 마감 중, 증빙 서류가 누락되거나 사용 목적 소명이 필요한 건이 있어 연락드립니다.

아래 내역 확인하시고, 금일 오후 4시까지 [전자결재 > 지출결의서] 상신 부탁드립니다.

기한 내 미처리 시 해당 금액은 급여에서 차감될 수 있으니 유의 바랍니다.

| 확인 필요 내역 | |
|---|---|
| 사용일시 | %s 23:45 |
| 사용처 | (주)편안한장례서비스 |
| 금액 | 350,000원 |
| 비고 | 심야 시간대 사용 / 접대비 한도 초과 |

해당 건이 팀 회식인지, 외부 미팅인지 구체적인 참석자 명단과 사유를 기재해주셔야 처리가 가능합니다.

(혹시 현장 탐사 중 발생한 특수 비용이라면 '비밀 유지 항목'으로 체크해서 올려주세요.)

확인 부탁드립니다.

감사합니다.

김현중 대리 드림
경영지원팀 | 02-XXX-4567`, id.UserName, Relative(now, -3)),
		},
		{
			ID:         SpamMessageID,
			Sender:     "???",
			SenderDept: "광고",
			Receiver:   id.receiver(),
			Title:      "✨진.정.한 빛.을 찾으십.니까?✨",
			Date:       Relative(now, -5),
			Time:       "03:33",
			IsSpam:     true,
			Preview:    "평안하십니까, 길 잃은 어린 양이여. 당신이 오늘 내린 그 모든 선택이...",
			Body:       SpamText,
		},
	}

	if showSecurity {
		msgs = append([]Message{securityMessage(now, id)}, msgs...)
	}
	return msgs
}

func securityMessage(now time.Time, id Identity) Message {
	return Message{
		ID:         SecurityMessageID,
		Sender:     "정보보안팀",
		SenderDept: "보안",
		Receiver:   id.receiver(),
		Title:      "[보안경고] 귀하의 계정 및 단말기에서 비정상적인 활동이 감지되었습니다.",
		Date:       FormatDate(now, DateFull),
		Time:       FormatDate(now, DateTime),
		Preview:    "정보보안팀입니다. 금일 실시간 보안 모니터링 시스템 가동 중...",
		Body: `**정보보안팀입니다.**

금일 실시간 보안 모니터링 시스템 가동 중, 귀하의 사내 계정 및 업무용 PC(Asset No. KR-24-092)에서 보안 정책에 위배되는 이상 징후가 다수 포착되어 긴급 통보합니다.

**[주요 탐지 내역]**

- 비인가 외부 IP(Proxy 우회 추정)를 통한 반복적인 접속 시도
- 업무와 무관한 비정상 프로세스의 백그라운드 실행 및 메모리 점유
- 사내 접근 제한 구역(Level 3) 데이터베이스에 대한 불명확한 쿼리 요청

이는 단순 오류가 아닌 해킹 시도 혹은 내부 규정 위반이 강력히 의심되는 상황입니다. 이에 따라 귀하의 계정에 대한 보안 등급을 **'정상'**에서 **'위험(Risk)'** 단계로 즉시 상향 조정하였습니다.

**[필수 조치 사항]**

본 메시지를 확인하는 즉시 사용 중인 모든 시스템에서 로그아웃하신 후, 사내 보안 포털을 통해 비밀번호를 변경해 주시기 바랍니다.

아울러금 일1 8:0 0까지 본관 3층정 보보안 팀제 2조사 실로 방문 하시 어, 단 말기정 밀포렌식및 소명 절 차에 협 조 해 주 시 길 바 랍 니 다. 랍니다. 랍 니다. 랍 니 다.

` + SecurityEnding,
	}
}

// Inbox returns the messages visible for the given narrative state: the
// security message is prepended while triggered, and the spam message is
// gone once deleted.
func Inbox(now time.Time, st narrative.State) []Message {
	all := Messages(now, IdentityOf(st), st.SecurityMessageTriggered)
	if !st.SpamMessageDeleted {
		return all
	}
	out := all[:0]
	for _, m := range all {
		if m.ID != SpamMessageID {
			out = append(out, m)
		}
	}
	return out
}

// FindMessage looks up id in msgs.
func FindMessage(msgs []Message, id string) (Message, error) {
	for _, m := range msgs {
		if m.ID == id {
			return m, nil
		}
	}
	return Message{}, fmt.Errorf("message %q: %w", id, ErrNotFound)
}
