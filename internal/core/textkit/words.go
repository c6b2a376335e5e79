package textkit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// stopWords are high-frequency fillers excluded from word statistics
var stopWords = wordSet(
	"a,an,the,and,or,of,to,in,is,it,that,this,for,on,with,as,at,by,be,are,was,were,from,not," +
		"have,has,had,he,she,they,you,i,we,me,my,our,his,her,them,their,ours,your,yours,its," +
		"if,then,so,do,does,did,can,could,should,would,will,just,about,im,ill,ive,dont,doesnt," +
		"wasnt,werent,arent,isnt,cant,couldnt,shouldnt,wont,yep,yeah,ok,okay,uh,um,like,got,get," +
		"gotta,nah,oh,ah,eh,ya,yo,mm,mmm,rt,btw,idk,lol,omg,brb,gtg,thx,thanks,pls,please")

// boilerWords are system-message and platform boilerplate terms that would
// otherwise dominate the frequency tables
var boilerWords = wordSet(
	"message,messages,liked,like,reaction,reacted,removed,unsent,shared,sent,photo,video," +
		"audio,gif,sticker,mentioned,created,named,joined,left,missed,call,called,voice,seen," +
		"story,reply,replied,forwarded,chat,group,attachment")

func wordSet(csv string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Split(csv, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out[w] = struct{}{}
		}
	}
	return out
}

var foldCaser = cases.Fold()

// Words repairs and lowercases text, strips punctuation and symbol runes, and
// returns the remaining tokens minus single characters, stop words,
// boilerplate words, and purely numeric tokens
func Words(text string) []string {
	if text == "" {
		return nil
	}
	lower := foldCaser.String(Repair(text))

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}

	var out []string
	for _, w := range strings.Fields(b.String()) {
		if utf8.RuneCountInString(w) <= 1 {
			continue
		}
		if _, ok := stopWords[w]; ok {
			continue
		}
		if _, ok := boilerWords[w]; ok {
			continue
		}
		if numeric(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func numeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
