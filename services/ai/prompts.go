package ai

import (
	"fmt"
	"strings"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
)

const classifySystemPrompt = `Du bist ein Assistent, der Texte analysiert und bestimmt, ob es sich um Beschwerden über das Zurücklassen am Bahnhof handelt.`

const classifyPromptTemplate = `Aufgabe: Analysiere die folgende Nachricht eines Kunden und entscheide, ob sie sich darauf bezieht, dass der Kunde an einer Haltestelle (Bahn, Bus, U-Bahn) stehen gelassen wurde – also der Fahrer nicht gehalten oder an der Haltestelle vorbeigefahren ist.

Hinweise, die auf diesen Fall hindeuten können:

Haltestellenbezug: Erwähnung von Haltestellen (z. B. „Haltestelle Bilker Kirche", „Haltestelle Universität Südost", „Haltestelle Pempelforter", „Haltestelle Haan Pütt", „Vautierstr." etc.).
Formulierungen: Ausdrücke wie „stehen gelassen", „vorbeifuhr", „ohne zu halten", „fährt an uns vorbei" oder Hinweise darauf, dass Fahrgäste trotz Warteposition nicht bedient wurden.
Situationsbeschreibung: Konkrete Zeitangaben, situative Details (z. B. „im Regen stehen", „warten", „wurde abgeblinkt") oder Verhaltensbeschreibungen (wie Gesten des Fahrers oder Reaktionen der Fahrgäste).
Unmut/Empörung: Aussagen, die auf Frust, Ärger oder Empörung über das Verhalten des Fahrers hinweisen.
Beispiele für Beschwerden, die in diese Kategorie fallen:

"Sehr geehrte Damen und Herren, heute, sogar gerade (Freitag, den 31.01.2025 um 12.23 Uhr) standen eine junge Dame mit einem Kinderwagen und ich an der Haltestelle Bilker Kirche in Düsseldorf und warteten auf den Bus 723 Richtung D-Eller, als der Busfahrer einfach ohne zu halten an uns vorbeifuhr. Man sah uns beiden an, dass wir auf diesen Bus warteten."

"Hallo. Es ist jetzt 15:27h und stehe an der Haltestelle Universität Südost. Gerade eben kam der Bus 835 Richtung Belsenplatz. Der Bus fuhr zwar langsamer, schaute kurz, machte aber keine Anstalten zu bremsen. Mein Winken wurde mit undeutbaren Gesten erwidert. Dann gab er Gas. 5 weitere Fahrgäste und ich sahen uns ungläubig an, dessen was gerade passierte."

"Sehr geehrte Damen und Herren, Ich stehe gerade an der Haltestelle Pempelforter im Regen. Ca. 13 Uhr und ihre nette Mitarbeiterin fährt mit voller Absicht an uns vorbei! Was soll das? Das ist mir noch nie passiert! Kundenfreundlich schaut anderes aus... Verärgert Grüße B. Blazejczak. Ich bitte um Stellungnahme."

"Ich bin eben gerade Zeuge geworden von der Unfähigkeit eines Busfahrers/in. Der 792 Richtung Sohlingen Ohligs kam um 8:20 an der Haltestelle Haan Pütt an. Ein älterer Herr, der nicht gut zu Fuß war und die Haltestelle noch nicht erreicht hatte, winkte dem Fahrer/in zu, dass er mit wollte. Der Fahrer/in fuhr an die Haltestelle, da dort noch jemand zusteigen wollte. Kurz bevor der ältere Herr den Bus erreichte und noch winkte, wurde der Blinker gesetzt und der Bus fuhr ab. Das nenne ich mal richtig unverschämt. So viel Zeit sollte doch wohl sein. Kann man keine Rücksicht auf ältere Menschen nehmen?????"

"Hallo, heute Samstag, 25.1., ist der Bus 733 an der Vautierstr. um 18.36 bzw. 18.37 direkt an der Haltestelle an uns vorbeigefahren. Danke, dass wir dadurch unseren Termin verpasst haben. Beste Grüße, Anett Wesoly."

Anweisung:
Lies die folgende Nachricht und entscheide, ob sie das Thema "Stehen gelassen werden an der Haltestelle" abdeckt. Antworte mit:

"Ja" – wenn die Nachricht darauf hindeutet, dass der Kunde an einer Haltestelle stehen gelassen wurde oder ein Bus/Train/andere Verkehrsmittel ohne Halt vorbeigefahren ist.
"Nein" – falls die Nachricht nicht in diese Kategorie fällt.

Antworte nur mit "Ja" oder "Nein".

Analysiere nun den folgenden Text:
Text: %s`

// lineCatalog lists every line identifier operating in the network, grouped
// by vehicle type, so the model names the vehicle correctly when a line
// number appears in the complaint.
const lineCatalog = `U-Bahnen / Stadtbahnen
U70
U71
U72
U73
U75
U76
U77
U78
U79
U83

Straßenbahnen
701
704
705
706
707
708
709

Busse
721
722
723
724
725
726
727
728
729
730
731
732
733
734
735
736
737
738
741
742
743
745
746
747
748
749
751
752
753
754
756
757
758
759
760
761
770
771
772
773
774
776
777
778
779
780
781
782
783
784
785
786
787
788
789
790
791
792
805
807
810
812
815
817
827
828
829
830
831
832
833
834
835
836
839
863
891
896

Schnell- und Metrobusse
SB19
SB50
SB51
SB52
SB53
SB55
SB57
SB59
SB68
SB79
M1
M2
M3

Orts- und Bürgerbusse
O1
O3
O5
O6
O10
O11
O12
O13
O14
O15
O16
O17
O19
BB1
BB2
BB3`

func buildClassifyPrompt(text string) string {
	return fmt.Sprintf(classifyPromptTemplate, text)
}

func buildReplyPrompt(request dto.GenerateReplyRequest) string {
	var b strings.Builder

	b.WriteString(`Du bist Kundensupport Mitarbeiter der Rheinbahn AG und schreibst Antworten auf Kundenanliegen. Die Kundenanliegen befassen sich alle mit der Kernbeschwerde, dass der Kunde an einer Haltestelle von einem Bus- oder Bahnfahrer stehen gelassen worden ist.

Bitte formuliere auf das folgende KUNDENANLIEGEN eine sehr freundliche Antwort.

Notiz: In dem Kundenanliegen sind die persönlich identifizierbaren Informationen ersetzt worden durch Platzhalter. Die Informationen, die ersetzt wurden, enthalten typischerweise:
- Haltestellennamen
- Straßennamen
- Namen der Personen, die die Nachricht geschrieben haben
- Namen von anderen Personen
- Datum und Uhrzeit

Die Platzhalter sind wie folgt. Bitte verwende die Platzhalter in deiner Antwort. Du findest die Platzhalter ebenfalls in der anonymisierten Nachricht:
`)
	b.WriteString(strings.Join(request.Placeholders, "\n"))
	b.WriteString(`

Stelle sicher, dass du die gleichen Platzhalter in deiner Antwort verwendest, dort wo sie sinnvoll sind.

Im Folgenden unter [LINIEN] findest du die Nummern der verkehrenden Busse, Stadtbahnen, U-Bahnen, Straßenbahnen sowie Schnell-, Metro-, Orts- und Bürgerbusse. Wenn du die Nummer der Linie in dem Kundenanliegen findest, dann bezeichne die Linie entsprechend korrekt.

[LINIEN]
`)
	b.WriteString(lineCatalog)
	b.WriteString(`
[LINIEN_ENDE]

[KUNDENDATEN]
`)
	if request.Nachname != "" || request.Vorname != "" || request.Anrede != "" {
		fmt.Fprintf(&b, "Vorname des Kunden: %s\nNachname des Kunden: %s\nAnrede des Kunden: %s\n[KUNDENDATEN_ENDE]\n", request.Vorname, request.Nachname, request.Anrede)
	} else {
		b.WriteString(`Wenn du das Geschlecht der Person ermitteln kannst, die die Nachricht geschrieben hat, dann verwende das Geschlecht in deiner Antwort in der Anrede. Zum Beispiel: "Sehr geehrte Frau Meier" oder "Sehr geehrter Herr Müller".
Wenn du das Geschlecht nicht ermitteln kannst, dann verwende die Anrede "Sehr geehrter Kunde".
Die Person, die die Nachricht geschrieben hat, ist üblicherweise am Ende der Nachricht zu finden.
[KUNDENDATEN_ENDE]
`)
	}

	b.WriteString(`
[KUNDENANLIEGEN]
`)
	b.WriteString(request.Text)
	b.WriteString(`
[KUNDENANLIEGEN_ENDE]

[REGELN]
Formuliere eine sehr freundliche und ausführliche Antwort. Nenne in deiner Antwort auch mögliche Ursachen für das Stehengelassenwerden. Nenne das Datum, die Uhrzeit und die Haltestelle in der Antwort, sofern diese dir in dem Kundenanliegen genannt wurden.
[REGELN_ENDE]

Bitte formuliere nun eine sehr freundliche Antwort auf das oben genannte Kundenanliegen.`)

	return b.String()
}
