package reminder

import (
	"fmt"
	"strings"

	"github.com/teheiw192/course-reminder-go/internal/schedule"
)

// FormatReminder renders the pre-class reminder message for one occurrence.
func FormatReminder(occ schedule.CourseOccurrence) string {
	var b strings.Builder
	b.WriteString("同学你好，待会有课哦\n")
	b.WriteString("上课时间：" + formatTime(occ) + "\n")
	b.WriteString("课程名称：" + occ.CourseName + "\n")
	b.WriteString("教师：" + occ.Teacher + "\n")
	b.WriteString("上课地点：" + occ.Location)
	return b.String()
}

// FormatDigest renders the evening preview of the next day's courses.
func FormatDigest(day schedule.Weekday, occurrences []schedule.CourseOccurrence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 明日（%s）课程安排：\n", day.Label())
	for _, occ := range occurrences {
		b.WriteString("\n")
		b.WriteString("时间：" + formatTime(occ) + "\n")
		b.WriteString("课程：" + occ.CourseName + "\n")
		b.WriteString("教师：" + occ.Teacher + "\n")
		b.WriteString("地点：" + occ.Location + "\n")
		fmt.Fprintf(&b, "周次：第%d-%d周\n", occ.WeekStart, occ.WeekEnd)
	}
	return b.String()
}

// formatTime prefers the period label when one was resolved, always with the
// concrete wall-clock range alongside.
func formatTime(occ schedule.CourseOccurrence) string {
	if occ.Period > 0 {
		return fmt.Sprintf("第%d节起（%s）", occ.Period, occ.Time)
	}
	return occ.Time.String()
}
